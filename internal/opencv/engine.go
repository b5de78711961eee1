package opencv

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"geometric-transformations/internal/core"
	"geometric-transformations/internal/geometry"
	"geometric-transformations/internal/transform"
)

// Engine runs the transformations through OpenCV. It validates inputs
// exactly like the native engine so both fail with the same errors.
type Engine struct {
	src  *core.Image
	opts transform.Options
}

var _ transform.Engine = (*Engine)(nil)

// NewEngine is a transform.Factory backed by OpenCV.
func NewEngine(img *core.Image, opts ...transform.Option) (transform.Engine, error) {
	if err := transform.ValidateSource(img); err != nil {
		return nil, err
	}
	return &Engine{src: img, opts: transform.NewOptions(opts...)}, nil
}

func (e *Engine) Scale(fx, fy float64) (*core.Image, error) {
	w, h, err := transform.ScaledSize(e.src.Width, e.src.Height, fx, fy)
	if err != nil {
		return nil, err
	}
	return e.run(func(src gocv.Mat, dst *gocv.Mat) error {
		if err := gocv.Resize(src, dst, image.Pt(w, h), 0, 0, gocv.InterpolationCubic); err != nil {
			return fmt.Errorf("opencv resize: %w", err)
		}
		return nil
	})
}

func (e *Engine) Rotate(degrees float64) (*core.Image, error) {
	if err := transform.CheckRotation(degrees); err != nil {
		return nil, err
	}
	// gocv.GetRotationMatrix2D takes an integer centre; build the matrix
	// here so odd sizes rotate about the true centre.
	return e.warpAffine(transform.RotationMatrix(e.src.Width, e.src.Height, degrees))
}

func (e *Engine) Affine(src, dst [3]geometry.Point) (*core.Image, error) {
	if err := transform.CheckPoints(src[:], dst[:]); err != nil {
		return nil, err
	}
	if geometry.Collinear(src[0], src[1], src[2]) {
		return nil, fmt.Errorf("affine transform: %w: source points are collinear", transform.ErrDegenerateGeometry)
	}

	sv := point2fVector(src[:])
	defer sv.Close()
	dv := point2fVector(dst[:])
	defer dv.Close()

	mat := gocv.GetAffineTransform2f(sv, dv)
	defer mat.Close()

	return e.warpAffine(readAffine(mat))
}

func (e *Engine) Translate(dx, dy float64) (*core.Image, error) {
	if err := transform.CheckTranslation(dx, dy); err != nil {
		return nil, err
	}
	return e.warpAffine(geometry.Translation(dx, dy))
}

func (e *Engine) Projective(src, dst [4]geometry.Point) (*core.Image, error) {
	if err := transform.CheckPoints(src[:], dst[:]); err != nil {
		return nil, err
	}
	if geometry.AnyCollinear(src[:]) || geometry.AnyCollinear(dst[:]) {
		return nil, fmt.Errorf("projective transform: %w: quadrilateral is degenerate", transform.ErrDegenerateGeometry)
	}

	sv := point2fVector(src[:])
	defer sv.Close()
	dv := point2fVector(dst[:])
	defer dv.Close()

	mat := gocv.GetPerspectiveTransform2f(sv, dv)
	defer mat.Close()

	h := readHomography(mat)
	if _, err := h.Invert(); err != nil {
		return nil, fmt.Errorf("projective transform: %w: %w", transform.ErrDegenerateGeometry, err)
	}

	return e.run(func(in gocv.Mat, out *gocv.Mat) error {
		m := homographyMat(h)
		defer m.Close()
		err := gocv.WarpPerspectiveWithParams(in, out, m, image.Pt(e.src.Width, e.src.Height),
			e.interpolation(), e.borderType(), e.borderValue())
		if err != nil {
			return fmt.Errorf("opencv warp perspective: %w", err)
		}
		return nil
	})
}

func (e *Engine) warpAffine(m geometry.Affine) (*core.Image, error) {
	if _, err := m.Invert(); err != nil {
		return nil, fmt.Errorf("affine warp: %w: %w", transform.ErrDegenerateGeometry, err)
	}
	return e.run(func(src gocv.Mat, dst *gocv.Mat) error {
		mat := affineMat(m)
		defer mat.Close()
		err := gocv.WarpAffineWithParams(src, dst, mat, image.Pt(e.src.Width, e.src.Height),
			e.interpolation(), e.borderType(), e.borderValue())
		if err != nil {
			return fmt.Errorf("opencv warp affine: %w", err)
		}
		return nil
	})
}

// run converts the source, applies op and converts the result back.
func (e *Engine) run(op func(src gocv.Mat, dst *gocv.Mat) error) (*core.Image, error) {
	src, err := ToMat(e.src)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	if err := op(src, &dst); err != nil {
		return nil, err
	}
	return FromMat(dst)
}

func (e *Engine) interpolation() gocv.InterpolationFlags {
	if e.opts.Interpolation == transform.Nearest {
		return gocv.InterpolationNearestNeighbor
	}
	return gocv.InterpolationLinear
}

func (e *Engine) borderType() gocv.BorderType {
	if e.opts.Border == transform.BorderReplicate {
		return gocv.BorderReplicate
	}
	return gocv.BorderConstant
}

// borderValue maps the per-channel fill onto gocv's scalar, which takes
// B, G, R, A as channels 0 to 3.
func (e *Engine) borderValue() color.RGBA {
	v := e.opts.BorderValue
	return color.RGBA{B: v[0], G: v[1], R: v[2], A: v[3]}
}

func homographyMat(h geometry.Homography) gocv.Mat {
	mat := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	for i, v := range h {
		mat.SetDoubleAt(i/3, i%3, v)
	}
	return mat
}
