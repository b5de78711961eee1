package transform

import (
	"math"

	"geometric-transformations/internal/core"
	"geometric-transformations/internal/geometry"
)

// sampler reads the source at fractional positions and honours the border
// policy for neighbours that fall outside it.
type sampler struct {
	src    *core.Image
	opts   Options
	maxX   int
	maxY   int
	border [4]float64
	px     [4]float64
}

func newSampler(src *core.Image, opts Options) *sampler {
	s := &sampler{
		src:  src,
		opts: opts,
		maxX: src.Width - 1,
		maxY: src.Height - 1,
	}
	for c := range s.border {
		s.border[c] = float64(opts.BorderValue[c])
	}
	return s
}

// inside reports whether (x, y) is a source pixel.
func (s *sampler) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x <= s.maxX && y <= s.maxY
}

// fetch adds w times the pixel at (x, y) to s.px.
func (s *sampler) fetch(x, y int, w float64) {
	if w == 0 {
		return
	}
	if !s.inside(x, y) {
		if s.opts.Border == BorderConstant {
			for c := 0; c < s.src.Channels; c++ {
				s.px[c] += w * s.border[c]
			}
			return
		}
		x = clamp(x, 0, s.maxX)
		y = clamp(y, 0, s.maxY)
	}
	off := s.src.PixOffset(x, y)
	for c := 0; c < s.src.Channels; c++ {
		s.px[c] += w * float64(s.src.Pix[off+c])
	}
}

// sample writes the value at (sx, sy) into dst.
func (s *sampler) sample(sx, sy float64, dst []uint8) {
	s.px = [4]float64{}

	if math.IsNaN(sx) || math.IsNaN(sy) || math.Abs(sx) > 1e9 || math.Abs(sy) > 1e9 {
		s.fill(dst)
		return
	}

	switch s.opts.Interpolation {
	case Nearest:
		x := int(math.Floor(sx + 0.5))
		y := int(math.Floor(sy + 0.5))
		if s.opts.Border == BorderConstant && !s.inside(x, y) {
			s.fill(dst)
			return
		}
		s.fetch(x, y, 1)
	default:
		x0 := math.Floor(sx)
		y0 := math.Floor(sy)
		fx := sx - x0
		fy := sy - y0
		ix, iy := int(x0), int(y0)

		// The whole 2x2 neighbourhood is outside.
		if s.opts.Border == BorderConstant && (ix < -1 || iy < -1 || ix > s.maxX || iy > s.maxY) {
			s.fill(dst)
			return
		}

		s.fetch(ix, iy, (1-fx)*(1-fy))
		s.fetch(ix+1, iy, fx*(1-fy))
		s.fetch(ix, iy+1, (1-fx)*fy)
		s.fetch(ix+1, iy+1, fx*fy)
	}

	for c := 0; c < s.src.Channels; c++ {
		dst[c] = saturate(s.px[c])
	}
}

// fill writes the border value. Positions too far out to sample land here
// in both border modes.
func (s *sampler) fill(dst []uint8) {
	for c := 0; c < s.src.Channels; c++ {
		dst[c] = s.opts.BorderValue[c]
	}
}

// warpAffine back-maps every destination pixel through inv, the inverse of
// the forward transform.
func warpAffine(src *core.Image, inv geometry.Affine, width, height int, opts Options) *core.Image {
	out := core.NewImage(width, height, src.Channels)
	s := newSampler(src, opts)
	ch := src.Channels

	for y := 0; y < height; y++ {
		fy := float64(y)
		bx := inv.B*fy + inv.C
		by := inv.E*fy + inv.F
		row := out.Pix[y*out.Stride() : (y+1)*out.Stride()]
		for x := 0; x < width; x++ {
			fx := float64(x)
			s.sample(inv.A*fx+bx, inv.D*fx+by, row[x*ch:x*ch+ch])
		}
	}
	return out
}

// warpPerspective back-maps every destination pixel through inv and the
// homogeneous divide. Pixels whose source lies at infinity get the border
// value.
func warpPerspective(src *core.Image, inv geometry.Homography, width, height int, opts Options) *core.Image {
	out := core.NewImage(width, height, src.Channels)
	s := newSampler(src, opts)
	ch := src.Channels

	for y := 0; y < height; y++ {
		fy := float64(y)
		row := out.Pix[y*out.Stride() : (y+1)*out.Stride()]
		for x := 0; x < width; x++ {
			fx := float64(x)
			px := row[x*ch : x*ch+ch]

			w := inv[6]*fx + inv[7]*fy + inv[8]
			if w == 0 {
				s.fill(px)
				continue
			}
			sx := (inv[0]*fx + inv[1]*fy + inv[2]) / w
			sy := (inv[3]*fx + inv[4]*fy + inv[5]) / w
			s.sample(sx, sy, px)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func saturate(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
