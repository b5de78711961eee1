package geometry

import (
	"fmt"
	"math"
)

// Affine is a 2x3 affine matrix, row-major:
//
//	| A  B  C |
//	| D  E  F |
//
// mapping (x, y) to (A*x + B*y + C, D*x + E*y + F).
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translation shifts points by (dx, dy).
func Translation(dx, dy float64) Affine {
	return Affine{
		A: 1, B: 0, C: dx,
		D: 0, E: 1, F: dy,
	}
}

// Rotation rotates by degrees about center with the given isotropic scale.
// Positive angles turn the image counter-clockwise as displayed (y down):
//
//	| c   s   (1-c)*cx - s*cy |
//	| -s  c   s*cx + (1-c)*cy |
//
// with c = scale*cos, s = scale*sin. Multiples of 90 degrees use exact
// trigonometric values.
func Rotation(center Point, degrees, scale float64) Affine {
	cos, sin := cosSinDegrees(degrees)
	c := scale * cos
	s := scale * sin
	return Affine{
		A: c, B: s, C: (1-c)*center.X - s*center.Y,
		D: -s, E: c, F: s*center.X + (1-c)*center.Y,
	}
}

func cosSinDegrees(degrees float64) (float64, float64) {
	if q := degrees / 90; q == math.Trunc(q) && !math.IsInf(q, 0) {
		switch int(math.Mod(math.Mod(q, 4)+4, 4)) {
		case 0:
			return 1, 0
		case 1:
			return 0, 1
		case 2:
			return -1, 0
		case 3:
			return 0, -1
		}
	}
	rad := degrees * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}

// Apply maps p through the matrix.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// Det is the determinant of the linear part.
func (m Affine) Det() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse mapping, or ErrSingular when the linear part
// is not invertible.
func (m Affine) Invert() (Affine, error) {
	det := m.Det()
	norm := math.Max(math.Max(math.Abs(m.A), math.Abs(m.B)), math.Max(math.Abs(m.D), math.Abs(m.E)))
	if det == 0 || math.Abs(det) <= 1e-12*norm*norm || math.IsNaN(det) {
		return Affine{}, ErrSingular
	}

	inv := 1 / det
	a := m.E * inv
	b := -m.B * inv
	d := -m.D * inv
	e := m.A * inv
	return Affine{
		A: a, B: b, C: -(a*m.C + b*m.F),
		D: d, E: e, F: -(d*m.C + e*m.F),
	}, nil
}

// Multiply returns m * other: other is applied first, then m.
func (m Affine) Multiply(other Affine) Affine {
	return Affine{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Homography lifts the affine matrix to 3x3.
func (m Affine) Homography() Homography {
	return Homography{
		m.A, m.B, m.C,
		m.D, m.E, m.F,
		0, 0, 1,
	}
}

// Rows returns the matrix as two rows of three values.
func (m Affine) Rows() [2][3]float64 {
	return [2][3]float64{{m.A, m.B, m.C}, {m.D, m.E, m.F}}
}

func (m Affine) String() string {
	return fmt.Sprintf("[[%g %g %g] [%g %g %g]]", m.A, m.B, m.C, m.D, m.E, m.F)
}

// AffineFromPoints solves the unique affine matrix that maps each src
// point onto the matching dst point. It uses Cramer's rule on the shared
// 3x3 system [x y 1] and fails with ErrSingular when the source triangle
// is degenerate.
func AffineFromPoints(src, dst [3]Point) (Affine, error) {
	if Collinear(src[0], src[1], src[2]) {
		return Affine{}, fmt.Errorf("source points %v %v %v are collinear: %w", src[0], src[1], src[2], ErrSingular)
	}

	x0, y0 := src[0].X, src[0].Y
	x1, y1 := src[1].X, src[1].Y
	x2, y2 := src[2].X, src[2].Y

	det := x0*(y1-y2) + x1*(y2-y0) + x2*(y0-y1)
	if det == 0 {
		return Affine{}, ErrSingular
	}

	// solve returns the coefficients (a, b, c) with a*xi + b*yi + c = ui.
	solve := func(u0, u1, u2 float64) (float64, float64, float64) {
		a := (u0*(y1-y2) + u1*(y2-y0) + u2*(y0-y1)) / det
		b := (x0*(u1-u2) + x1*(u2-u0) + x2*(u0-u1)) / det
		c := (x0*(y1*u2-y2*u1) + x1*(y2*u0-y0*u2) + x2*(y0*u1-y1*u0)) / det
		return a, b, c
	}

	var m Affine
	m.A, m.B, m.C = solve(dst[0].X, dst[1].X, dst[2].X)
	m.D, m.E, m.F = solve(dst[0].Y, dst[1].Y, dst[2].Y)
	return m, nil
}
