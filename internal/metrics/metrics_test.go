package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geometric-transformations/internal/core"
)

func filled(w, h, ch int, v uint8) *core.Image {
	img := core.NewImage(w, h, ch)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestIdenticalImages(t *testing.T) {
	e := NewEvaluator()
	a := filled(4, 3, 3, 90)

	all := e.CalculateAll(a, a.Clone())
	assert.Equal(t, 0.0, all["mse"])
	assert.True(t, math.IsInf(all["psnr"], 1))
	assert.Equal(t, 0.0, all["max_abs_diff"])
}

func TestKnownDifference(t *testing.T) {
	e := NewEvaluator()
	a := filled(2, 2, 1, 100)
	b := a.Clone()
	b.Pix[0] = 110 // one sample off by 10

	mse, err := e.Calculate("mse", a, b)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, mse, 1e-12)

	psnr, err := e.CalculatePSNR(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 20*math.Log10(255/5.0), psnr, 1e-9)

	worst, err := e.Calculate("max_abs_diff", a, b)
	require.NoError(t, err)
	assert.Equal(t, 10.0, worst)
}

func TestShapeMismatch(t *testing.T) {
	e := NewEvaluator()
	_, err := e.Calculate("psnr", filled(2, 2, 1, 0), filled(2, 2, 3, 0))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	assert.Empty(t, e.CalculateAll(filled(2, 2, 1, 0), filled(3, 2, 1, 0)))

	_, err = e.Calculate("ssim", filled(1, 1, 1, 0), filled(1, 1, 1, 0))
	assert.Error(t, err)
}

func TestEvaluateStep(t *testing.T) {
	e := NewEvaluator()
	src := filled(4, 4, 1, 50)

	scaled := e.EvaluateStep(src, filled(8, 8, 1, 50), "scale")
	assert.Equal(t, map[string]float64{"width": 8, "height": 8}, scaled)

	rotated := e.EvaluateStep(src, src.Clone(), "rotate")
	assert.Contains(t, rotated, "psnr")
	assert.Contains(t, rotated, "mse")
}

func TestNamesAndInfo(t *testing.T) {
	e := NewEvaluator()
	assert.Equal(t, []string{"max_abs_diff", "mse", "psnr"}, e.Names())

	info := e.GetMetricInfo()
	assert.True(t, info["psnr"].HigherBetter)
	assert.False(t, info["mse"].HigherBetter)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "∞", Format("psnr", math.Inf(1)))
	assert.Equal(t, "12", Format("width", 12))
	assert.Equal(t, "31.250", Format("psnr", 31.25))
}
