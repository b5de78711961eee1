package core

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
)

// MaxDimension bounds the width and height of images accepted by ValidateImage.
const MaxDimension = 16384

// Image is a dense raster of 8-bit samples stored row-major with
// interleaved channels. Pix holds Height*Width*Channels samples.
//
// The transformation core treats an Image as immutable: every operation
// allocates a new one.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewImage allocates a zero-filled image.
func NewImage(width, height, channels int) *Image {
	if width < 0 || height < 0 || channels < 0 {
		width, height, channels = 0, 0, 0
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// Stride is the number of samples per row.
func (img *Image) Stride() int {
	return img.Width * img.Channels
}

// PixOffset returns the index of the first sample of pixel (x, y).
func (img *Image) PixOffset(x, y int) int {
	return y*img.Stride() + x*img.Channels
}

// Sample returns channel c of pixel (x, y).
func (img *Image) Sample(x, y, c int) uint8 {
	return img.Pix[img.PixOffset(x, y)+c]
}

// SetSample sets channel c of pixel (x, y).
func (img *Image) SetSample(x, y, c int, v uint8) {
	img.Pix[img.PixOffset(x, y)+c] = v
}

// Empty reports whether the image has no pixels.
func (img *Image) Empty() bool {
	return img == nil || img.Width <= 0 || img.Height <= 0 || img.Channels <= 0
}

// Bounds returns the image rectangle anchored at the origin.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	if img == nil {
		return nil
	}
	out := &Image{
		Width:    img.Width,
		Height:   img.Height,
		Channels: img.Channels,
		Pix:      make([]uint8, len(img.Pix)),
	}
	copy(out.Pix, img.Pix)
	return out
}

// Equal reports whether both images have the same shape and samples.
func (img *Image) Equal(other *Image) bool {
	if img == nil || other == nil {
		return img == other
	}
	return img.Width == other.Width &&
		img.Height == other.Height &&
		img.Channels == other.Channels &&
		bytes.Equal(img.Pix, other.Pix)
}

func (img *Image) String() string {
	return fmt.Sprintf("%dx%dx%d", img.Width, img.Height, img.Channels)
}

// FromImage converts a Go image into a raster. Gray images become one
// channel, opaque images three (RGB) and everything else four (non
// premultiplied RGBA).
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch s := src.(type) {
	case *image.Gray:
		out := NewImage(w, h, 1)
		for y := 0; y < h; y++ {
			row := s.Pix[y*s.Stride : y*s.Stride+w]
			copy(out.Pix[y*w:(y+1)*w], row)
		}
		return out
	case *image.NRGBA:
		out := NewImage(w, h, 4)
		for y := 0; y < h; y++ {
			row := s.Pix[y*s.Stride : y*s.Stride+w*4]
			copy(out.Pix[y*w*4:(y+1)*w*4], row)
		}
		return out
	}

	channels := 4
	if opaque, ok := src.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		channels = 3
	}

	out := NewImage(w, h, channels)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			out.Pix[i] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			if channels == 4 {
				out.Pix[i+3] = c.A
			}
			i += channels
		}
	}
	return out
}

// ToImage converts the raster into a Go image for display and encoding.
// Channel layouts are read as gray, gray+alpha, RGB and RGBA.
func (img *Image) ToImage() image.Image {
	rect := img.Bounds()

	switch img.Channels {
	case 1:
		out := image.NewGray(rect)
		copy(out.Pix, img.Pix)
		return out
	case 2:
		out := image.NewNRGBA(rect)
		for i, j := 0, 0; i < len(img.Pix); i, j = i+2, j+4 {
			g := img.Pix[i]
			out.Pix[j], out.Pix[j+1], out.Pix[j+2], out.Pix[j+3] = g, g, g, img.Pix[i+1]
		}
		return out
	case 3:
		out := image.NewRGBA(rect)
		for i, j := 0, 0; i < len(img.Pix); i, j = i+3, j+4 {
			out.Pix[j], out.Pix[j+1], out.Pix[j+2], out.Pix[j+3] = img.Pix[i], img.Pix[i+1], img.Pix[i+2], 255
		}
		return out
	default:
		out := image.NewNRGBA(rect)
		copy(out.Pix, img.Pix)
		return out
	}
}

// ValidateImage checks the basic requirements for an image handed over by
// a decoder.
func ValidateImage(img *Image) error {
	if img == nil {
		return fmt.Errorf("image is nil")
	}

	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", img.Width, img.Height)
	}

	if img.Channels < 1 || img.Channels > 4 {
		return fmt.Errorf("unsupported channel count: %d", img.Channels)
	}

	if len(img.Pix) != img.Width*img.Height*img.Channels {
		return fmt.Errorf("sample buffer holds %d bytes, want %d", len(img.Pix), img.Width*img.Height*img.Channels)
	}

	if img.Width > MaxDimension || img.Height > MaxDimension {
		return fmt.Errorf("image too large: %dx%d (max: %d)", img.Width, img.Height, MaxDimension)
	}

	return nil
}
