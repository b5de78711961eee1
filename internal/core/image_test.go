package core

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageRoundTrip(t *testing.T) {
	for _, ch := range []int{1, 3, 4} {
		img := NewImage(5, 3, ch)
		for i := range img.Pix {
			img.Pix[i] = uint8(i * 11)
		}
		if ch == 4 {
			// fully opaque so NRGBA keeps exact values
			for i := 3; i < len(img.Pix); i += 4 {
				img.Pix[i] = 255
			}
		}

		back := FromImage(img.ToImage())
		if ch == 4 {
			assert.Equal(t, 4, back.Channels)
		}
		assert.True(t, img.Equal(back), "channels %d: got %s", ch, back)
	}
}

func TestFromImageChannelCount(t *testing.T) {
	assert.Equal(t, 1, FromImage(image.NewGray(image.Rect(0, 0, 2, 2))).Channels)

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			rgba.Set(x, y, color.RGBA{10, 20, 30, 255})
		}
	}
	got := FromImage(rgba)
	assert.Equal(t, 3, got.Channels)
	assert.Equal(t, uint8(20), got.Sample(1, 1, 1))

	rgba.Set(0, 0, color.RGBA{0, 0, 0, 0})
	assert.Equal(t, 4, FromImage(rgba).Channels)
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage(NewImage(2, 2, 3)))
	assert.Error(t, ValidateImage(nil))
	assert.Error(t, ValidateImage(&Image{Width: 0, Height: 2, Channels: 1}))
	assert.Error(t, ValidateImage(&Image{Width: 2, Height: 2, Channels: 5, Pix: make([]uint8, 20)}))
	assert.Error(t, ValidateImage(&Image{Width: 2, Height: 2, Channels: 1, Pix: make([]uint8, 3)}))
}

func TestImageData(t *testing.T) {
	data := NewImageData()
	assert.False(t, data.HasImage())
	assert.Error(t, data.SetProcessed(NewImage(1, 1, 1), "Rotation"))

	src := NewImage(4, 3, 3)
	require.NoError(t, data.SetOriginal(src, "/tmp/photo.JPG", 2048))
	src.Pix[0] = 99
	assert.Equal(t, uint8(0), data.GetOriginal().Pix[0], "original is copied")

	meta := data.GetMetadata()
	assert.Equal(t, ImageMetadata{Width: 4, Height: 3, Channels: 3, Format: "jpg", Size: 2048}, meta)

	result := NewImage(8, 6, 3)
	require.NoError(t, data.SetProcessed(result, "Scaling"))
	got, kind := data.GetProcessed()
	assert.Same(t, result, got)
	assert.Equal(t, "Scaling", kind)

	require.NoError(t, data.ResetToOriginal())
	got, kind = data.GetProcessed()
	assert.Nil(t, got)
	assert.Empty(t, kind)

	data.Clear()
	assert.False(t, data.HasImage())
	assert.Error(t, data.ResetToOriginal())
	assert.Error(t, data.SetOriginal(&Image{}, "", 0))
}
