package transform

import (
	"math"

	"geometric-transformations/internal/core"
)

// cubicA is the free parameter of the cubic convolution kernel.
const cubicA = -0.75

// cubicWeights returns the kernel weights for the four taps at offsets
// -1, 0, 1, 2 around a sample t in [0, 1) past the base pixel.
func cubicWeights(t float64) [4]float64 {
	const a = cubicA
	w0 := ((a*(t+1)-5*a)*(t+1)+8*a)*(t+1) - 4*a
	w1 := ((a+2)*t-(a+3))*t*t + 1
	w2 := ((a+2)*(1-t)-(a+3))*(1-t)*(1-t) + 1
	w3 := 1 - w0 - w1 - w2
	return [4]float64{w0, w1, w2, w3}
}

// taps holds, for each output coordinate, the four clamped source indices
// and their weights.
type taps struct {
	idx [][4]int
	w   [][4]float64
}

// cubicTaps back-maps n output coordinates with pixel-centre alignment,
// src = (dst + 0.5) / scale - 0.5, and replicates edge pixels.
func cubicTaps(n, srcLen int, scale float64) taps {
	t := taps{
		idx: make([][4]int, n),
		w:   make([][4]float64, n),
	}
	inv := 1 / scale
	for i := 0; i < n; i++ {
		s := (float64(i)+0.5)*inv - 0.5
		base := math.Floor(s)
		t.w[i] = cubicWeights(s - base)
		b := int(base)
		for k := 0; k < 4; k++ {
			t.idx[i][k] = clamp(b-1+k, 0, srcLen-1)
		}
	}
	return t
}

// resizeBicubic scales src to width x height. It runs separably: a
// horizontal pass into a float buffer, then a vertical pass.
func resizeBicubic(src *core.Image, width, height int, fx, fy float64) *core.Image {
	ch := src.Channels
	xt := cubicTaps(width, src.Width, fx)
	yt := cubicTaps(height, src.Height, fy)

	rowLen := width * ch
	tmp := make([]float64, src.Height*rowLen)
	for y := 0; y < src.Height; y++ {
		in := src.Pix[y*src.Stride() : (y+1)*src.Stride()]
		row := tmp[y*rowLen : (y+1)*rowLen]
		for x := 0; x < width; x++ {
			idx, w := xt.idx[x], xt.w[x]
			for c := 0; c < ch; c++ {
				row[x*ch+c] = w[0]*float64(in[idx[0]*ch+c]) +
					w[1]*float64(in[idx[1]*ch+c]) +
					w[2]*float64(in[idx[2]*ch+c]) +
					w[3]*float64(in[idx[3]*ch+c])
			}
		}
	}

	out := core.NewImage(width, height, ch)
	for y := 0; y < height; y++ {
		idx, w := yt.idx[y], yt.w[y]
		r0 := tmp[idx[0]*rowLen : (idx[0]+1)*rowLen]
		r1 := tmp[idx[1]*rowLen : (idx[1]+1)*rowLen]
		r2 := tmp[idx[2]*rowLen : (idx[2]+1)*rowLen]
		r3 := tmp[idx[3]*rowLen : (idx[3]+1)*rowLen]
		dst := out.Pix[y*rowLen : (y+1)*rowLen]
		for i := range dst {
			dst[i] = saturate(w[0]*r0[i] + w[1]*r1[i] + w[2]*r2[i] + w[3]*r3[i])
		}
	}
	return out
}
