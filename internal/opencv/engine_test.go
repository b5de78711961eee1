package opencv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"geometric-transformations/internal/core"
	"geometric-transformations/internal/geometry"
	"geometric-transformations/internal/metrics"
	"geometric-transformations/internal/transform"
)

// gradient is smooth enough that OpenCV's fixed-point interpolation and
// the native float path agree to within a grey level or two.
func gradient(w, h, ch int) *core.Image {
	img := core.NewImage(w, h, ch)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < ch; c++ {
				v := (x*200/(w-1) + y*50/(h-1) + c*10) % 256
				img.SetSample(x, y, c, uint8(v))
			}
		}
	}
	return img
}

func TestMatRoundTrip(t *testing.T) {
	for _, ch := range []int{1, 3, 4} {
		img := gradient(7, 5, ch)
		mat, err := ToMat(img)
		require.NoError(t, err)

		assert.Equal(t, 5, mat.Rows())
		assert.Equal(t, 7, mat.Cols())
		assert.Equal(t, ch, mat.Channels())

		back, err := FromMat(mat)
		mat.Close()
		require.NoError(t, err)
		assert.True(t, img.Equal(back), "channels %d", ch)
	}
}

func TestEngineMatchesNative(t *testing.T) {
	img := gradient(48, 32, 3)
	tri := [3]geometry.Point{geometry.Pt(0, 0), geometry.Pt(48, 0), geometry.Pt(24, 16)}
	triDst := [3]geometry.Point{geometry.Pt(4, 2), geometry.Pt(44, 6), geometry.Pt(20, 18)}
	quad := [4]geometry.Point{geometry.Pt(0, 0), geometry.Pt(0, 32), geometry.Pt(48, 0), geometry.Pt(48, 32)}
	quadDst := [4]geometry.Point{geometry.Pt(3, 1), geometry.Pt(0, 30), geometry.Pt(46, 4), geometry.Pt(48, 32)}

	requests := []transform.Request{
		transform.Scale{FX: 1.5, FY: 0.75},
		transform.Rotate{Degrees: 30},
		transform.Affine{Src: tri, Dst: triDst},
		transform.Translate{DX: 5, DY: -3},
		transform.Projective{Src: quad, Dst: quadDst},
	}

	native, err := transform.NewEngine(img)
	require.NoError(t, err)
	cv, err := NewEngine(img)
	require.NoError(t, err)

	eval := metrics.NewEvaluator()
	for _, r := range requests {
		t.Run(string(r.Kind()), func(t *testing.T) {
			want, err := transform.Apply(native, r)
			require.NoError(t, err)
			got, err := transform.Apply(cv, r)
			require.NoError(t, err)

			psnr, err := eval.CalculatePSNR(want, got)
			require.NoError(t, err)
			assert.Greater(t, psnr, 30.0)
		})
	}
}

func TestEngineIdentities(t *testing.T) {
	img := gradient(20, 10, 1)
	cv, err := NewEngine(img)
	require.NoError(t, err)

	out, err := cv.Translate(0, 0)
	require.NoError(t, err)
	assert.True(t, img.Equal(out))

	out, err = cv.Rotate(0)
	require.NoError(t, err)
	assert.True(t, img.Equal(out))
}

func TestEngineErrors(t *testing.T) {
	_, err := NewEngine(core.NewImage(0, 0, 1))
	assert.ErrorIs(t, err, transform.ErrDimensionMismatch)

	cv, err := NewEngine(gradient(8, 8, 1))
	require.NoError(t, err)

	_, err = cv.Scale(-1, 1)
	assert.ErrorIs(t, err, transform.ErrInvalidParameter)

	line := [3]geometry.Point{geometry.Pt(0, 0), geometry.Pt(1, 1), geometry.Pt(2, 2)}
	tri := [3]geometry.Point{geometry.Pt(0, 0), geometry.Pt(8, 0), geometry.Pt(4, 4)}
	_, err = cv.Affine(line, tri)
	assert.ErrorIs(t, err, transform.ErrDegenerateGeometry)
	_, err = cv.Affine(tri, line)
	assert.ErrorIs(t, err, transform.ErrDegenerateGeometry)

	quad := [4]geometry.Point{geometry.Pt(0, 0), geometry.Pt(0, 8), geometry.Pt(8, 0), geometry.Pt(8, 8)}
	flat := [4]geometry.Point{geometry.Pt(0, 0), geometry.Pt(1, 1), geometry.Pt(2, 2), geometry.Pt(3, 0)}
	_, err = cv.Projective(quad, flat)
	assert.ErrorIs(t, err, transform.ErrDegenerateGeometry)
}

func TestEngineRunReturnsOpError(t *testing.T) {
	e, err := NewEngine(gradient(8, 8, 3))
	require.NoError(t, err)

	boom := errors.New("opencv failed")
	out, err := e.(*Engine).run(func(gocv.Mat, *gocv.Mat) error { return boom })
	assert.Nil(t, out)
	assert.ErrorIs(t, err, boom)
}
