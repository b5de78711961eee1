package gui

import (
	"image"

	"golang.org/x/image/draw"
)

// thumbnail shrinks img so neither side exceeds maxDim. Smaller images
// and a non-positive maxDim return img unchanged.
func thumbnail(img image.Image, maxDim int) image.Image {
	if img == nil || maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	tw, th := maxDim, maxDim
	if w >= h {
		th = max(1, h*maxDim/w)
	} else {
		tw = max(1, w*maxDim/h)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Rect, img, b, draw.Src, nil)
	return dst
}
