package geometry

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func assertPoint(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, tol, "y of %v", got)
}

func TestRotationQuarterTurnsAreExact(t *testing.T) {
	center := Pt(2, 2)

	assert.Equal(t, Identity(), Rotation(center, 0, 1))
	assert.Equal(t, Rotation(center, 0, 1), Rotation(center, 360, 1))
	assert.Equal(t, Rotation(center, 90, 1), Rotation(center, -270, 1))

	m := Rotation(center, 180, 1)
	assert.Equal(t, Affine{A: -1, B: 0, C: 4, D: 0, E: -1, F: 4}, m)
}

func TestRotationKeepsCenterFixed(t *testing.T) {
	center := Pt(3.5, 1.25)
	for _, deg := range []float64{17, 45, 123.4, -60} {
		m := Rotation(center, deg, 1)
		assertPoint(t, center, m.Apply(center))
	}
}

func TestRotationDirection(t *testing.T) {
	// 90 degrees counter-clockwise on screen: a point right of the center
	// moves above it (smaller y).
	m := Rotation(Pt(0, 0), 90, 1)
	assertPoint(t, Pt(0, -1), m.Apply(Pt(1, 0)))
}

func TestAffineInvert(t *testing.T) {
	m := Affine{A: 2, B: 0.5, C: 3, D: -1, E: 1.5, F: -7}
	inv, err := m.Invert()
	require.NoError(t, err)

	for _, p := range []Point{Pt(0, 0), Pt(10, -3), Pt(-2.5, 8)} {
		assertPoint(t, p, inv.Apply(m.Apply(p)))
	}

	_, err = Affine{A: 1, B: 2, D: 2, E: 4}.Invert()
	assert.ErrorIs(t, err, ErrSingular)
}

func TestAffineMultiplyOrder(t *testing.T) {
	// Translate first, then scale.
	m := Affine{A: 2, E: 2}.Multiply(Translation(1, 1))
	assertPoint(t, Pt(2, 2), m.Apply(Pt(0, 0)))
}

func TestAffineFromPoints(t *testing.T) {
	want := Affine{A: 1.5, B: -0.25, C: 4, D: 0.3, E: 0.9, F: -2}
	src := [3]Point{Pt(0, 0), Pt(100, 0), Pt(50, 50)}
	var dst [3]Point
	for i, p := range src {
		dst[i] = want.Apply(p)
	}

	got, err := AffineFromPoints(src, dst)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{want.A, want.B, want.C, want.D, want.E, want.F},
		[]float64{got.A, got.B, got.C, got.D, got.E, got.F}, tol)
}

func TestAffineFromPointsIdentity(t *testing.T) {
	src := [3]Point{Pt(0, 0), Pt(640, 0), Pt(320, 240)}
	got, err := AffineFromPoints(src, src)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 0, 0, 1, 0},
		[]float64{got.A, got.B, got.C, got.D, got.E, got.F}, tol)
}

func TestAffineFromPointsCollinear(t *testing.T) {
	tests := []struct {
		name string
		src  [3]Point
	}{
		{"on a line", [3]Point{Pt(0, 0), Pt(1, 1), Pt(2, 2)}},
		{"coincident", [3]Point{Pt(5, 5), Pt(5, 5), Pt(9, 1)}},
		{"all equal", [3]Point{Pt(1, 1), Pt(1, 1), Pt(1, 1)}},
		{"horizontal", [3]Point{Pt(0, 3), Pt(10, 3), Pt(-4, 3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AffineFromPoints(tt.src, [3]Point{Pt(0, 0), Pt(1, 0), Pt(0, 1)})
			assert.True(t, errors.Is(err, ErrSingular), "got %v", err)
		})
	}
}

func TestHomographyFromPoints(t *testing.T) {
	src := [4]Point{Pt(0, 0), Pt(0, 480), Pt(640, 0), Pt(640, 480)}
	dst := [4]Point{Pt(30, 12), Pt(-5, 470), Pt(600, 40), Pt(655, 500)}

	h, err := HomographyFromPoints(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 1.0, h[8])

	for i := range src {
		p, ok := h.Apply(src[i])
		require.True(t, ok)
		assert.InDelta(t, dst[i].X, p.X, 1e-6)
		assert.InDelta(t, dst[i].Y, p.Y, 1e-6)
	}

	inv, err := h.Invert()
	require.NoError(t, err)
	for i := range dst {
		p, ok := inv.Apply(dst[i])
		require.True(t, ok)
		assert.InDelta(t, src[i].X, p.X, 1e-6)
		assert.InDelta(t, src[i].Y, p.Y, 1e-6)
	}
}

func TestHomographyFromPointsLargeImages(t *testing.T) {
	quads := map[string]func(s float64) [4]Point{
		"shrink to 10px": func(s float64) [4]Point {
			c := s / 2
			return [4]Point{Pt(c-5, c-5), Pt(c-5, c+5), Pt(c+5, c-5), Pt(c+5, c+5)}
		},
		"shrinking keystone": func(s float64) [4]Point {
			c := s / 2
			return [4]Point{Pt(c-2, c-4), Pt(c-5, c+5), Pt(c+2, c-4), Pt(c+5, c+5)}
		},
		"magnify": func(s float64) [4]Point {
			c := s / 2
			return [4]Point{Pt(c-1.5*s, c-1.5*s), Pt(c-1.5*s, c+1.5*s), Pt(c+1.5*s, c-1.5*s), Pt(c+1.5*s, c+1.5*s)}
		},
		"keystone": func(s float64) [4]Point {
			return [4]Point{Pt(0.3*s, 0), Pt(0, s), Pt(0.7*s, 0), Pt(s, s)}
		},
		"skewed": func(s float64) [4]Point {
			return [4]Point{Pt(0.1*s, 0.05*s), Pt(-0.02*s, 0.9*s), Pt(0.95*s, 0.2*s), Pt(1.1*s, 1.05*s)}
		},
	}

	for _, size := range []float64{1000, 4000} {
		src := [4]Point{Pt(0, 0), Pt(0, size), Pt(size, 0), Pt(size, size)}
		for name, quad := range quads {
			dst := quad(size)
			t.Run(fmt.Sprintf("%s/%g", name, size), func(t *testing.T) {
				h, err := HomographyFromPoints(src, dst)
				require.NoError(t, err)

				inv, err := h.Invert()
				require.NoError(t, err)

				for i := range src {
					p, ok := h.Apply(src[i])
					require.True(t, ok)
					assert.InDelta(t, dst[i].X, p.X, 1e-6*size)
					assert.InDelta(t, dst[i].Y, p.Y, 1e-6*size)

					back, ok := inv.Apply(dst[i])
					require.True(t, ok)
					assert.InDelta(t, src[i].X, back.X, 1e-6*size)
					assert.InDelta(t, src[i].Y, back.Y, 1e-6*size)
				}
			})
		}
	}
}

func TestHomographyInvertIgnoresScale(t *testing.T) {
	shrink := Homography{0.001, 0, 4000, 0, 0.001, 4000, 0, 0, 1}
	inv, err := shrink.Invert()
	require.NoError(t, err)
	p, ok := inv.Apply(Pt(4000.5, 4001))
	require.True(t, ok)
	assert.InDelta(t, 500, p.X, 1e-6)
	assert.InDelta(t, 1000, p.Y, 1e-6)

	rankTwo := Homography{1, 2, 3, 2, 4, 6, 0, 0, 1}
	_, err = rankTwo.Invert()
	assert.ErrorIs(t, err, ErrSingular)
}

func TestHomographyMultiply(t *testing.T) {
	a := Translation(3, -2).Homography()
	b := Rotation(Pt(0, 0), 90, 2).Homography()
	p := Pt(1, 4)

	got, ok := a.Multiply(b).Apply(p)
	require.True(t, ok)
	want, _ := b.Apply(p)
	want, _ = a.Apply(want)
	assertPoint(t, want, got)
}

func TestHomographyFromPointsIdentity(t *testing.T) {
	src := [4]Point{Pt(0, 0), Pt(0, 10), Pt(10, 0), Pt(10, 10)}
	h, err := HomographyFromPoints(src, src)
	require.NoError(t, err)

	id := IdentityHomography()
	for i := range h {
		assert.InDelta(t, id[i], h[i], tol, "entry %d", i)
	}
}

func TestHomographyFromPointsDegenerate(t *testing.T) {
	square := [4]Point{Pt(0, 0), Pt(0, 10), Pt(10, 0), Pt(10, 10)}
	line := [4]Point{Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(5, 0)}

	_, err := HomographyFromPoints(line, square)
	assert.ErrorIs(t, err, ErrSingular)

	_, err = HomographyFromPoints(square, line)
	assert.ErrorIs(t, err, ErrSingular)

	same := [4]Point{Pt(3, 3), Pt(3, 3), Pt(3, 3), Pt(3, 3)}
	_, err = HomographyFromPoints(square, same)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestHomographyApplyAtInfinity(t *testing.T) {
	h := Homography{1, 0, 0, 0, 1, 0, 1, 0, 0}
	_, ok := h.Apply(Pt(0, 5))
	assert.False(t, ok)
}

func TestHomographyNormalize(t *testing.T) {
	h, err := Homography{2, 0, 0, 0, 2, 0, 0, 0, 2}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, IdentityHomography(), h)

	_, err = Homography{}.Normalize()
	assert.ErrorIs(t, err, ErrSingular)
}

func TestAffineHomographyAgree(t *testing.T) {
	m := Rotation(Pt(4, 4), 33, 1.2)
	h := m.Homography()
	p := Pt(7, -2)
	got, ok := h.Apply(p)
	require.True(t, ok)
	assertPoint(t, m.Apply(p), got)
	assert.InDelta(t, m.Det(), h.Det(), tol)
}

func TestParsePoints(t *testing.T) {
	pts, err := ParsePoints("0,0; 10.5,-3 ;7,1e2;")
	require.NoError(t, err)
	assert.Equal(t, []Point{Pt(0, 0), Pt(10.5, -3), Pt(7, 100)}, pts)
	assert.Equal(t, "0,0;10.5,-3;7,100", FormatPoints(pts))

	for _, bad := range []string{"1", "1,2,3", "a,1", "1;2"} {
		_, err := ParsePoints(bad)
		assert.Error(t, err, bad)
	}
}

func TestPointIsFinite(t *testing.T) {
	assert.True(t, Pt(1, -1).IsFinite())
	assert.False(t, Pt(math.NaN(), 0).IsFinite())
	assert.False(t, Pt(0, math.Inf(-1)).IsFinite())
}
