// Main application window and wiring
package gui

import (
	"errors"
	"fmt"
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"geometric-transformations/internal/config"
	"geometric-transformations/internal/core"
	"geometric-transformations/internal/imgio"
	"geometric-transformations/internal/preview"
	"geometric-transformations/internal/transform"
)

// Application represents the main application
type Application struct {
	app       fyne.App
	window    fyne.Window
	logger    *logrus.Logger
	cfg       config.Config
	debugMode bool

	// Core components
	imageData *core.ImageData
	pipeline  *preview.Pipeline
	loader    *imgio.ImageLoader

	// GUI components
	canvas       *ImageCanvas
	properties   *PropertiesPanel
	metricsPanel *MetricsPanel
	menuHandler  *MenuHandler

	mainContent *container.Split
	statusLabel *widget.Label
}

func NewApplication(app fyne.App, cfg config.Config, logger *logrus.Logger, debugMode bool) *Application {
	window := app.NewWindow("OpenCV Geometric Transformations")
	window.Resize(fyne.NewSize(1400, 900))
	window.CenterOnScreen()

	a := &Application{
		app:       app,
		window:    window,
		logger:    logger,
		cfg:       cfg,
		debugMode: debugMode,
	}

	a.initializeCore()
	a.initializeGUI()
	a.setupLayout()
	a.setupCallbacks()

	return a
}

func (a *Application) initializeCore() {
	a.imageData = core.NewImageData()
	a.pipeline = preview.NewPipeline(a.imageData, a.cfg.Factory(), a.logger)
	a.pipeline.SetDelay(a.cfg.PreviewDelay())
	if opts, err := a.cfg.TransformOptions(); err == nil {
		a.pipeline.SetEngine(nil, opts...)
	}
	a.loader = imgio.NewImageLoader(a.logger)
}

func (a *Application) initializeGUI() {
	a.canvas = NewImageCanvas(a.imageData, a.cfg.Preview.MaxDimension, a.logger)
	a.properties = NewPropertiesPanel(a.pipeline, a.imageData, a.cfg, a.logger)
	a.metricsPanel = NewMetricsPanel()
	a.menuHandler = NewMenuHandler(a.window, a.imageData, a.pipeline, a.loader, a.logger)
	a.statusLabel = widget.NewLabel("Choose an image... (File → Open Image)")
}

func (a *Application) setupLayout() {
	right := container.NewVBox(
		a.metricsPanel.GetContainer(),
		widget.NewCard("Status", "", a.statusLabel),
	)

	centerAndRight := container.NewHSplit(
		container.NewPadded(a.canvas.GetContainer()),
		container.NewVScroll(right),
	)
	centerAndRight.SetOffset(0.8)

	a.mainContent = container.NewHSplit(
		container.NewVScroll(a.properties.GetContainer()),
		centerAndRight,
	)
	a.mainContent.SetOffset(0.25)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(a.mainContent)
}

func (a *Application) setupCallbacks() {
	// Pipeline callbacks already run on the UI thread
	a.pipeline.SetCallbacks(
		func(img image.Image, metrics map[string]float64) {
			a.canvas.UpdatePreview(img)
			a.metricsPanel.UpdateMetrics(metrics)
			b := img.Bounds()
			a.updateStatusMessage(fmt.Sprintf("Transformed image: %s", fmtSize(b.Dx(), b.Dy())))
		},
		func(err error) {
			a.showError("Processing Error", err)
		},
	)

	a.properties.SetErrorCallback(func(err error) {
		a.updateStatusMessage(fmt.Sprintf("Invalid parameters: %v", err))
	})

	a.menuHandler.SetCallbacks(
		func(name string) {
			a.canvas.ClearPreview()
			a.canvas.UpdateOriginalImage()
			a.metricsPanel.Clear()
			a.properties.Enable()
			a.updateStatusMessage(fmt.Sprintf("Loaded: %s", name))
		},
		func(path string) {
			a.showInfo("Image Saved", fmt.Sprintf("Image successfully saved to:\n%s", path))
			a.updateStatusMessage(fmt.Sprintf("Saved: %s", path))
		},
		func() {
			a.canvas.ClearPreview()
			a.metricsPanel.Clear()
			a.updateStatusMessage("Reset to original image")
		},
	)
}

func (a *Application) updateStatusMessage(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.pipeline.Stop()
	a.imageData.Clear()
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	switch {
	case errors.Is(err, transform.ErrDegenerateGeometry):
		a.updateStatusMessage("The output points do not define a valid transformation")
	case errors.Is(err, transform.ErrInvalidParameter):
		a.updateStatusMessage(fmt.Sprintf("Invalid parameter: %v", err))
	default:
		dialog.ShowError(err, a.window)
		a.updateStatusMessage(fmt.Sprintf("Error: %v", err))
	}
}

func (a *Application) showInfo(title, message string) {
	a.logger.WithField("message", message).Info(title)
	dialog.ShowInformation(title, message, a.window)
}

// LoadImageFromPath loads an image given on the command line
func (a *Application) LoadImageFromPath(path string) error {
	img, err := a.loader.LoadImage(path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	var size int64
	if fi, err := os.Stat(path); err == nil {
		size = fi.Size()
	}
	if err := a.imageData.SetOriginal(img, path, size); err != nil {
		return fmt.Errorf("failed to set image: %w", err)
	}

	a.canvas.ClearPreview()
	a.canvas.UpdateOriginalImage()
	a.metricsPanel.Clear()
	a.properties.Enable()
	a.updateStatusMessage(fmt.Sprintf("Loaded: %s", path))
	return nil
}
