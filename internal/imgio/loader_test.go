package imgio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geometric-transformations/internal/core"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestDecodeKeepsRGBOrder(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	src.Set(1, 0, color.RGBA{G: 255, A: 255})
	src.Set(2, 0, color.RGBA{B: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := NewImageLoader(quietLogger()).Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 2, img.Height)
	require.GreaterOrEqual(t, img.Channels, 3)

	assert.Equal(t, uint8(255), img.Sample(0, 0, 0), "red stays in channel 0")
	assert.Equal(t, uint8(255), img.Sample(1, 0, 1))
	assert.Equal(t, uint8(255), img.Sample(2, 0, 2))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	loader := NewImageLoader(quietLogger())
	_, err := loader.Decode(nil)
	assert.Error(t, err)
	_, err = loader.Decode([]byte("not an image"))
	assert.Error(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	loader := NewImageLoader(quietLogger())
	img := core.NewImage(5, 4, 3)
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, loader.SaveImage(img, path))

	back, err := loader.LoadImage(path)
	require.NoError(t, err)
	assert.True(t, img.Equal(back))

	// The encoded file is a plain PNG any decoder can read.
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	r, _, _, _ := decoded.At(1, 0).RGBA()
	assert.Equal(t, uint32(img.Sample(1, 0, 0))*0x101, r)
}

func TestSaveRequiresPNG(t *testing.T) {
	loader := NewImageLoader(quietLogger())
	err := loader.SaveImage(core.NewImage(1, 1, 1), filepath.Join(t.TempDir(), "out.jpg"))
	assert.Error(t, err)
}

func TestGrayRoundTrip(t *testing.T) {
	loader := NewImageLoader(quietLogger())
	img := core.NewImage(4, 4, 1)
	img.SetSample(2, 1, 0, 200)

	data, err := loader.EncodePNG(img)
	require.NoError(t, err)

	back, err := loader.Decode(data)
	require.NoError(t, err)
	assert.True(t, img.Equal(back))
}
