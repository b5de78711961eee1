package geometry

import (
	"fmt"
	"math"
)

// Homography is a 3x3 projective matrix stored row-major. Points map as
// (x, y, 1) -> (X, Y, W) -> (X/W, Y/W).
type Homography [9]float64

// IdentityHomography returns the identity projective matrix.
func IdentityHomography() Homography {
	return Homography{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Apply maps p through the matrix. ok is false when p maps to infinity.
func (h Homography) Apply(p Point) (Point, bool) {
	w := h[6]*p.X + h[7]*p.Y + h[8]
	if w == 0 {
		return Point{}, false
	}
	return Point{
		X: (h[0]*p.X + h[1]*p.Y + h[2]) / w,
		Y: (h[3]*p.X + h[4]*p.Y + h[5]) / w,
	}, true
}

// Det returns the determinant.
func (h Homography) Det() float64 {
	return h[0]*(h[4]*h[8]-h[5]*h[7]) -
		h[1]*(h[3]*h[8]-h[5]*h[6]) +
		h[2]*(h[3]*h[7]-h[4]*h[6])
}

// Adjoint returns the transpose of the cofactor matrix. For an invertible
// matrix it equals the inverse up to scale, which is all a homography needs.
func (h Homography) Adjoint() Homography {
	return Homography{
		h[4]*h[8] - h[5]*h[7], h[2]*h[7] - h[1]*h[8], h[1]*h[5] - h[2]*h[4],
		h[5]*h[6] - h[3]*h[8], h[0]*h[8] - h[2]*h[6], h[2]*h[3] - h[0]*h[5],
		h[3]*h[7] - h[4]*h[6], h[1]*h[6] - h[0]*h[7], h[0]*h[4] - h[1]*h[3],
	}
}

// Invert returns the inverse matrix, or ErrSingular. Singularity is judged
// on the row and column equilibrated matrix, so the verdict does not change
// when either side of the mapping is rescaled or shifted far from the
// origin.
func (h Homography) Invert() (Homography, error) {
	det := h.Det()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Homography{}, ErrSingular
	}
	if math.Abs(h.equilibrated().Det()) <= 1e-12 {
		return Homography{}, ErrSingular
	}

	inv := h.Adjoint()
	for i := range inv {
		inv[i] /= det
	}
	return inv, nil
}

// equilibrated scales every row, then every column, to a largest entry
// of 1. Zero rows and columns are left as they are.
func (h Homography) equilibrated() Homography {
	out := h
	for r := 0; r < 3; r++ {
		m := math.Max(math.Abs(out[r*3]), math.Max(math.Abs(out[r*3+1]), math.Abs(out[r*3+2])))
		if m == 0 {
			continue
		}
		for c := 0; c < 3; c++ {
			out[r*3+c] /= m
		}
	}
	for c := 0; c < 3; c++ {
		m := math.Max(math.Abs(out[c]), math.Max(math.Abs(out[3+c]), math.Abs(out[6+c])))
		if m == 0 {
			continue
		}
		for r := 0; r < 3; r++ {
			out[r*3+c] /= m
		}
	}
	return out
}

// Multiply returns the composition that applies other first, then h.
func (h Homography) Multiply(other Homography) Homography {
	var out Homography
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = h[r*3]*other[c] + h[r*3+1]*other[3+c] + h[r*3+2]*other[6+c]
		}
	}
	return out
}

// Normalize scales the matrix so that the bottom-right entry is 1.
func (h Homography) Normalize() (Homography, error) {
	if h[8] == 0 {
		return Homography{}, ErrSingular
	}
	out := h
	for i := range out {
		out[i] /= h[8]
	}
	return out, nil
}

// Rows returns the matrix as three rows.
func (h Homography) Rows() [3][3]float64 {
	return [3][3]float64{{h[0], h[1], h[2]}, {h[3], h[4], h[5]}, {h[6], h[7], h[8]}}
}

func (h Homography) String() string {
	return fmt.Sprintf("[[%g %g %g] [%g %g %g] [%g %g %g]]", h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], h[8])
}

// HomographyFromPoints solves the perspective matrix, normalized so that
// its bottom-right entry is 1, that maps the four src points onto the four
// dst points. The 8 unknowns come from the linear system
//
//	h0*x + h1*y + h2 - h6*x*u - h7*y*u = u
//	h3*x + h4*y + h5 - h6*x*v - h7*y*v = v
//
// written once per correspondence. The system is solved on coordinates
// centred on each quadrilateral's centroid and scaled to a mean distance
// of sqrt(2), which keeps it well conditioned for large images. Three
// collinear points on either side leave no valid quadrilateral and fail
// with ErrSingular.
func HomographyFromPoints(src, dst [4]Point) (Homography, error) {
	if AnyCollinear(src[:]) {
		return Homography{}, fmt.Errorf("source quadrilateral is degenerate: %w", ErrSingular)
	}
	if AnyCollinear(dst[:]) {
		return Homography{}, fmt.Errorf("destination quadrilateral is degenerate: %w", ErrSingular)
	}

	ts, ns := conditioner(src)
	td, nd := conditioner(dst)

	var a [8][8]float64
	var b [8]float64
	for i := 0; i < 4; i++ {
		x, y := ns[i].X, ns[i].Y
		u, v := nd[i].X, nd[i].Y

		a[i] = [8]float64{x, y, 1, 0, 0, 0, -x * u, -y * u}
		b[i] = u
		a[i+4] = [8]float64{0, 0, 0, x, y, 1, -x * v, -y * v}
		b[i+4] = v
	}

	sol, err := solve8(a, b)
	if err != nil {
		return Homography{}, err
	}

	hn := Homography{sol[0], sol[1], sol[2], sol[3], sol[4], sol[5], sol[6], sol[7], 1}
	tdInv, err := td.Invert()
	if err != nil {
		return Homography{}, err
	}

	h := tdInv.Multiply(hn).Multiply(ts)
	if n, err := h.Normalize(); err == nil {
		h = n
	}
	if _, err := h.Invert(); err != nil {
		return Homography{}, err
	}
	return h, nil
}

// conditioner returns the similarity that moves the centroid of pts to the
// origin and their mean distance from it to sqrt(2), with the moved points.
func conditioner(pts [4]Point) (Homography, [4]Point) {
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= 4
	cy /= 4

	var d float64
	for _, p := range pts {
		d += math.Hypot(p.X-cx, p.Y-cy)
	}
	d /= 4

	s := 1.0
	if d > 0 {
		s = math.Sqrt2 / d
	}

	var out [4]Point
	for i, p := range pts {
		out[i] = Pt((p.X-cx)*s, (p.Y-cy)*s)
	}
	return Homography{s, 0, -s * cx, 0, s, -s * cy, 0, 0, 1}, out
}

// solve8 runs Gaussian elimination with partial pivoting on an 8x8 system.
func solve8(a [8][8]float64, b [8]float64) ([8]float64, error) {
	const n = 8

	scale := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			scale = math.Max(scale, math.Abs(a[i][j]))
		}
	}
	if scale == 0 {
		return [8]float64{}, ErrSingular
	}
	eps := 1e-12 * scale

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) <= eps {
			return [8]float64{}, ErrSingular
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			f := a[row][col] / a[col][col]
			if f == 0 {
				continue
			}
			for k := col; k < n; k++ {
				a[row][k] -= f * a[col][k]
			}
			b[row] -= f * b[col]
		}
	}

	var x [8]float64
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}
