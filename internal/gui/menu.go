// Menu handler for application actions
package gui

import (
	"fmt"
	"io"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"geometric-transformations/internal/algorithms"
	"geometric-transformations/internal/core"
	"geometric-transformations/internal/imgio"
	"geometric-transformations/internal/preview"
)

// MenuHandler handles menu actions
type MenuHandler struct {
	window    fyne.Window
	imageData *core.ImageData
	pipeline  *preview.Pipeline
	loader    *imgio.ImageLoader
	logger    *logrus.Logger

	onImageLoaded func(string)
	onImageSaved  func(string)
	onReset       func()
}

func NewMenuHandler(window fyne.Window, imageData *core.ImageData, pipeline *preview.Pipeline, loader *imgio.ImageLoader, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{
		window:    window,
		imageData: imageData,
		pipeline:  pipeline,
		loader:    loader,
		logger:    logger,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mh.openImage),
		fyne.NewMenuItem("Save Output Image...", mh.saveImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Reset to Original", func() {
			if err := mh.imageData.ResetToOriginal(); err != nil {
				mh.logger.WithError(err).Debug("Nothing to reset")
				return
			}
			mh.logger.Info("Reset to original image")
			if mh.onReset != nil {
				mh.onReset()
			}
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
}

func (mh *MenuHandler) openImage() {
	mh.logger.Info("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		name := reader.URI().Name()
		data, err := io.ReadAll(reader)
		if err != nil {
			mh.showError("Failed to Read Image", err)
			return
		}

		img, err := mh.loader.Decode(data)
		if err != nil {
			mh.showError("Failed to Load Image", err)
			return
		}

		if err := mh.imageData.SetOriginal(img, name, int64(len(data))); err != nil {
			mh.showError("Failed to Set Image", err)
			return
		}

		mh.logger.WithFields(logrus.Fields{
			"file": name,
			"size": img.String(),
		}).Info("Image loaded successfully")

		if mh.onImageLoaded != nil {
			mh.onImageLoaded(name)
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(imgio.SupportedExtensions()))
	fileDialog.Show()
}

// saveImage writes the current result as PNG. The current request is
// recomputed first so the file never lags behind the controls.
func (mh *MenuHandler) saveImage() {
	if !mh.imageData.HasImage() {
		mh.showError("No Image", fmt.Errorf("no image loaded to save"))
		return
	}

	sourcePath := mh.imageData.GetFilepath()
	go func() {
		result, err := mh.pipeline.ProcessNow()
		if err != nil {
			fyne.Do(func() { mh.showError("Failed to Transform Image", err) })
			return
		}

		data, err := mh.loader.EncodePNG(result.Image)
		if err != nil {
			fyne.Do(func() { mh.showError("Failed to Encode Image", err) })
			return
		}

		fyne.Do(func() { mh.showSaveDialog(result, sourcePath, data) })
	}()
}

// showSaveDialog asks for a destination and writes the encoded PNG there.
// It must run on the UI thread.
func (mh *MenuHandler) showSaveDialog(result *preview.Result, sourcePath string, data []byte) {
	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if _, err := writer.Write(data); err != nil {
			mh.showError("Failed to Save Image", err)
			return
		}

		path := writer.URI().Path()
		mh.logger.WithFields(logrus.Fields{
			"filepath": path,
			"bytes":    len(data),
		}).Info("Image saved successfully")

		if mh.onImageSaved != nil {
			mh.onImageSaved(path)
		}
	}, mh.window)

	label := result.Algorithm
	if a, ok := algorithms.Get(result.Algorithm); ok {
		label = a.GetName()
	}
	fileDialog.SetFileName(imgio.OutputName(label, sourcePath, time.Now()))
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	fileDialog.Show()
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Geometric Transformations"),
		widget.NewSeparator(),
		widget.NewLabel("Scale, rotate, translate, affine and projective"),
		widget.NewLabel("warps with a live preview and quality metrics."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne v2.6 and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(400, 250))
	aboutDialog.Show()
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.WithError(err).Error(title)
	dialog.ShowError(err, mh.window)
}

func (mh *MenuHandler) SetCallbacks(onImageLoaded, onImageSaved func(string), onReset func()) {
	mh.onImageLoaded = onImageLoaded
	mh.onImageSaved = onImageSaved
	mh.onReset = onReset
}
