package transform

import (
	"errors"
	"fmt"
	"math"

	"geometric-transformations/internal/core"
	"geometric-transformations/internal/geometry"
)

var (
	// ErrInvalidParameter reports a non-positive scale factor, a
	// non-finite number or a malformed parameter set.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateGeometry reports correspondence points that do not
	// determine a unique, invertible transform.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrDimensionMismatch reports an image with no pixels or a sample
	// buffer that does not match its declared shape.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// ValidateSource checks that img can be handed to an engine.
func ValidateSource(img *core.Image) error {
	if img == nil {
		return fmt.Errorf("%w: no image", ErrDimensionMismatch)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: image is %dx%d", ErrDimensionMismatch, img.Width, img.Height)
	}
	if img.Channels < 1 || img.Channels > 4 {
		return fmt.Errorf("%w: unsupported channel count %d", ErrInvalidParameter, img.Channels)
	}
	if want := img.Width * img.Height * img.Channels; len(img.Pix) != want {
		return fmt.Errorf("%w: %d samples for %s image, want %d", ErrDimensionMismatch, len(img.Pix), img, want)
	}
	return nil
}

// ScaledSize validates the scale factors and returns the output size for a
// width x height source.
func ScaledSize(width, height int, fx, fy float64) (int, int, error) {
	if err := checkFinite("fx", fx); err != nil {
		return 0, 0, err
	}
	if err := checkFinite("fy", fy); err != nil {
		return 0, 0, err
	}
	if fx <= 0 || fy <= 0 {
		return 0, 0, fmt.Errorf("%w: scale factors must be positive, got fx=%g fy=%g", ErrInvalidParameter, fx, fy)
	}

	// Range-check in float64 so huge factors cannot overflow int.
	fw := math.Round(float64(width) * fx)
	fh := math.Round(float64(height) * fy)
	if fw > core.MaxDimension || fh > core.MaxDimension {
		return 0, 0, fmt.Errorf("%w: scaled size %gx%g exceeds %d", ErrInvalidParameter, fw, fh, core.MaxDimension)
	}
	if fw < 1 || fh < 1 {
		return 0, 0, fmt.Errorf("%w: scaling %dx%d by (%g, %g) leaves no pixels", ErrInvalidParameter, width, height, fx, fy)
	}
	return int(fw), int(fh), nil
}

// CheckRotation validates a rotation angle.
func CheckRotation(degrees float64) error {
	return checkFinite("angle", degrees)
}

// CheckTranslation validates a translation offset.
func CheckTranslation(dx, dy float64) error {
	if err := checkFinite("dx", dx); err != nil {
		return err
	}
	return checkFinite("dy", dy)
}

// CheckPoints validates correspondence points.
func CheckPoints(src, dst []geometry.Point) error {
	for i, p := range src {
		if !p.IsFinite() {
			return fmt.Errorf("%w: source point %d is %v", ErrInvalidParameter, i, p)
		}
	}
	for i, p := range dst {
		if !p.IsFinite() {
			return fmt.Errorf("%w: destination point %d is %v", ErrInvalidParameter, i, p)
		}
	}
	return nil
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is %g", ErrInvalidParameter, name, v)
	}
	return nil
}

// degenerate wraps a solver failure.
func degenerate(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDegenerateGeometry, err)
}
