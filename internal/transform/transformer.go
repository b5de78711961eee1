// Package transform implements the geometric transformations: scaling,
// rotation, three-point affine, translation and four-point projective.
//
// A Transformer wraps one immutable source image. Every operation back-maps
// each destination pixel into the source and resamples there, returning a
// new image with the same channel count. Scaling changes the canvas size;
// all other operations keep it.
//
// Operations fail with ErrInvalidParameter, ErrDegenerateGeometry or
// ErrDimensionMismatch (test with errors.Is) and never return a partial
// image.
package transform

import (
	"fmt"

	"geometric-transformations/internal/core"
	"geometric-transformations/internal/geometry"
)

// Transformer is the native Engine. It is safe for concurrent use.
type Transformer struct {
	src  *core.Image
	opts Options
}

var _ Engine = (*Transformer)(nil)

// New validates img and returns a Transformer for it. The image must not
// be modified while the Transformer is in use.
func New(img *core.Image, opts ...Option) (*Transformer, error) {
	if err := ValidateSource(img); err != nil {
		return nil, err
	}
	return &Transformer{src: img, opts: NewOptions(opts...)}, nil
}

// NewEngine is New as a Factory.
func NewEngine(img *core.Image, opts ...Option) (Engine, error) {
	t, err := New(img, opts...)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Source returns the source image.
func (t *Transformer) Source() *core.Image {
	return t.src
}

// Options returns the engine options.
func (t *Transformer) Options() Options {
	return t.opts
}

// Scale resizes to round(W*fx) x round(H*fy) with bicubic interpolation.
func (t *Transformer) Scale(fx, fy float64) (*core.Image, error) {
	w, h, err := ScaledSize(t.src.Width, t.src.Height, fx, fy)
	if err != nil {
		return nil, err
	}
	return resizeBicubic(t.src, w, h, fx, fy), nil
}

// RotationMatrix returns the forward matrix used by Rotate.
func RotationMatrix(width, height int, degrees float64) geometry.Affine {
	center := geometry.Pt(float64(width)/2, float64(height)/2)
	return geometry.Rotation(center, degrees, 1)
}

// Rotate turns the image by degrees about its centre, counter-clockwise as
// displayed. Corners that leave the canvas are cropped.
func (t *Transformer) Rotate(degrees float64) (*core.Image, error) {
	if err := CheckRotation(degrees); err != nil {
		return nil, err
	}
	return t.WarpAffine(RotationMatrix(t.src.Width, t.src.Height, degrees), t.src.Width, t.src.Height)
}

// Affine maps the three src points onto the three dst points.
func (t *Transformer) Affine(src, dst [3]geometry.Point) (*core.Image, error) {
	if err := CheckPoints(src[:], dst[:]); err != nil {
		return nil, err
	}
	m, err := geometry.AffineFromPoints(src, dst)
	if err != nil {
		return nil, degenerate("affine transform", err)
	}
	return t.WarpAffine(m, t.src.Width, t.src.Height)
}

// Translate shifts the image by (dx, dy).
func (t *Transformer) Translate(dx, dy float64) (*core.Image, error) {
	if err := CheckTranslation(dx, dy); err != nil {
		return nil, err
	}
	return t.WarpAffine(geometry.Translation(dx, dy), t.src.Width, t.src.Height)
}

// Projective maps the four src points onto the four dst points.
func (t *Transformer) Projective(src, dst [4]geometry.Point) (*core.Image, error) {
	if err := CheckPoints(src[:], dst[:]); err != nil {
		return nil, err
	}
	h, err := geometry.HomographyFromPoints(src, dst)
	if err != nil {
		return nil, degenerate("projective transform", err)
	}
	return t.WarpPerspective(h, t.src.Width, t.src.Height)
}

// WarpAffine renders the source through the forward matrix m onto a
// width x height canvas.
func (t *Transformer) WarpAffine(m geometry.Affine, width, height int) (*core.Image, error) {
	if err := checkCanvas(width, height); err != nil {
		return nil, err
	}
	inv, err := m.Invert()
	if err != nil {
		return nil, degenerate("affine warp", err)
	}
	return warpAffine(t.src, inv, width, height, t.opts), nil
}

// WarpPerspective renders the source through the forward homography h onto
// a width x height canvas.
func (t *Transformer) WarpPerspective(h geometry.Homography, width, height int) (*core.Image, error) {
	if err := checkCanvas(width, height); err != nil {
		return nil, err
	}
	inv, err := h.Invert()
	if err != nil {
		return nil, degenerate("perspective warp", err)
	}
	return warpPerspective(t.src, inv, width, height, t.opts), nil
}

func checkCanvas(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: canvas is %dx%d", ErrDimensionMismatch, width, height)
	}
	return nil
}
