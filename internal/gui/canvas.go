// Side-by-side original and transformed image display
package gui

import (
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"geometric-transformations/internal/core"
)

// ImageCanvas shows the original next to the transformed image
type ImageCanvas struct {
	imageData *core.ImageData
	logger    *logrus.Logger
	maxDim    int

	split         *container.Split
	originalView  *widget.Card
	previewView   *widget.Card
	originalImage *canvas.Image
	previewImage  *canvas.Image
}

func NewImageCanvas(imageData *core.ImageData, maxDim int, logger *logrus.Logger) *ImageCanvas {
	ic := &ImageCanvas{
		imageData: imageData,
		logger:    logger,
		maxDim:    maxDim,
	}

	ic.initializeUI()
	return ic
}

func (ic *ImageCanvas) initializeUI() {
	ic.originalImage = newDisplayImage()
	ic.previewImage = newDisplayImage()

	ic.originalView = widget.NewCard("Original Image", "", ic.originalImage)
	ic.previewView = widget.NewCard("Transformed Image", "", ic.previewImage)

	ic.split = container.NewHSplit(ic.originalView, ic.previewView)
	ic.split.SetOffset(0.5)
}

func newDisplayImage() *canvas.Image {
	img := canvas.NewImageFromImage(placeholder())
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	img.SetMinSize(fyne.NewSize(320, 240))
	return img
}

func placeholder() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 200, 150))
	fill := color.RGBA{240, 240, 240, 255}
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, fill)
		}
	}
	return img
}

func (ic *ImageCanvas) GetContainer() fyne.CanvasObject {
	return ic.split
}

// UpdateOriginalImage redraws the loaded image
func (ic *ImageCanvas) UpdateOriginalImage() {
	original := ic.imageData.GetOriginal()
	if original == nil {
		ic.logger.Debug("No image data available for original update")
		return
	}

	meta := ic.imageData.GetMetadata()
	ic.originalView.SetSubTitle(original.String())
	ic.originalImage.Image = thumbnail(original.ToImage(), ic.maxDim)
	ic.originalImage.Refresh()

	ic.logger.WithFields(logrus.Fields{
		"size":   original.String(),
		"format": meta.Format,
	}).Debug("Original image displayed")
}

// UpdatePreview shows a transformation result
func (ic *ImageCanvas) UpdatePreview(preview image.Image) {
	if preview == nil {
		return
	}
	b := preview.Bounds()
	ic.previewView.SetSubTitle(fmtSize(b.Dx(), b.Dy()))
	ic.previewImage.Image = thumbnail(preview, ic.maxDim)
	ic.previewImage.Refresh()
}

func (ic *ImageCanvas) ClearPreview() {
	ic.previewView.SetSubTitle("")
	ic.previewImage.Image = placeholder()
	ic.previewImage.Refresh()
}

func fmtSize(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}
