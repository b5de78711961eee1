// Transformation selection and parameter controls
package gui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"geometric-transformations/internal/algorithms"
	"geometric-transformations/internal/config"
	"geometric-transformations/internal/core"
	"geometric-transformations/internal/preview"
	"geometric-transformations/internal/transform"
)

// PropertiesPanel lets the user pick a transformation and edit its
// parameters. Every edit is sent to the preview pipeline.
type PropertiesPanel struct {
	pipeline  *preview.Pipeline
	imageData *core.ImageData
	cfg       config.Config
	logger    *logrus.Logger

	vbox            *fyne.Container
	algorithmSelect *widget.Select
	description     *widget.Label
	paramContent    *fyne.Container

	backendSelect *widget.Select
	interpSelect  *widget.Select
	borderSelect  *widget.Select

	enabled          bool
	currentAlgorithm string
	params           map[string]interface{}
	onError          func(error)
}

func NewPropertiesPanel(pipeline *preview.Pipeline, imageData *core.ImageData, cfg config.Config, logger *logrus.Logger) *PropertiesPanel {
	pp := &PropertiesPanel{
		pipeline:  pipeline,
		imageData: imageData,
		cfg:       cfg,
		logger:    logger,
		params:    make(map[string]interface{}),
	}

	pp.initializeUI()
	return pp
}

func (pp *PropertiesPanel) initializeUI() {
	pp.algorithmSelect = widget.NewSelect(algorithms.Names(), pp.onAlgorithmSelected)
	pp.algorithmSelect.PlaceHolder = "Which geometric transformation would you like to apply?"
	pp.algorithmSelect.Disable()

	pp.description = widget.NewLabel("")
	pp.description.Wrapping = fyne.TextWrapWord

	pp.paramContent = container.NewVBox()
	paramScroll := container.NewVScroll(pp.paramContent)
	paramScroll.SetMinSize(fyne.NewSize(300, 320))

	pp.backendSelect = widget.NewSelect([]string{config.BackendNative, config.BackendOpenCV}, func(string) { pp.onEngineChanged() })
	pp.interpSelect = widget.NewSelect([]string{transform.Bilinear.String(), transform.Nearest.String()}, func(string) { pp.onEngineChanged() })
	pp.borderSelect = widget.NewSelect([]string{transform.BorderConstant.String(), transform.BorderReplicate.String()}, func(string) { pp.onEngineChanged() })

	pp.backendSelect.SetSelected(pp.cfg.Backend)
	pp.interpSelect.SetSelected(pp.cfg.Interpolation)
	pp.borderSelect.SetSelected(pp.cfg.Border.Mode)

	algorithmCard := widget.NewCard("Transformation", "",
		container.NewVBox(pp.algorithmSelect, pp.description))

	parametersCard := widget.NewCard("Parameters", "", paramScroll)

	engineCard := widget.NewCard("Engine", "",
		widget.NewForm(
			widget.NewFormItem("Backend", pp.backendSelect),
			widget.NewFormItem("Interpolation", pp.interpSelect),
			widget.NewFormItem("Border", pp.borderSelect),
		))

	pp.vbox = container.NewVBox(
		algorithmCard,
		widget.NewSeparator(),
		parametersCard,
		widget.NewSeparator(),
		engineCard,
	)
}

func (pp *PropertiesPanel) GetContainer() fyne.CanvasObject {
	return pp.vbox
}

func (pp *PropertiesPanel) SetErrorCallback(onError func(error)) {
	pp.onError = onError
}

// Enable activates the controls and rebuilds them for the loaded image
func (pp *PropertiesPanel) Enable() {
	pp.enabled = true
	pp.algorithmSelect.Enable()

	if pp.currentAlgorithm == "" {
		pp.algorithmSelect.SetSelected(algorithms.Names()[0])
		return
	}
	pp.onAlgorithmSelected(pp.currentAlgorithm)
}

func (pp *PropertiesPanel) onAlgorithmSelected(selected string) {
	algorithm, exists := algorithms.Get(selected)
	if !exists {
		return
	}

	pp.currentAlgorithm = selected
	pp.description.SetText(algorithm.GetDescription())

	meta := pp.imageData.GetMetadata()
	pp.params = algorithm.GetDefaultParams(meta.Width, meta.Height)
	pp.createParameterWidgets(algorithm.GetParameterInfo(meta.Width, meta.Height))

	pp.logger.WithField("algorithm", selected).Info("Transformation selected")
	pp.submit()
}

func (pp *PropertiesPanel) createParameterWidgets(info []algorithms.ParameterInfo) {
	pp.paramContent.RemoveAll()
	for _, param := range info {
		if param.Bounded() {
			pp.paramContent.Add(pp.createSlider(param))
		} else {
			pp.paramContent.Add(pp.createEntry(param))
		}
	}
	pp.paramContent.Refresh()
}

func (pp *PropertiesPanel) createSlider(param algorithms.ParameterInfo) fyne.CanvasObject {
	minVal, _ := param.Min.(float64)
	maxVal, _ := param.Max.(float64)
	value, _ := pp.params[param.Name].(float64)

	valueLabel := widget.NewLabel(formatParam(param, value))
	slider := widget.NewSlider(minVal, maxVal)
	if param.Step > 0 {
		slider.Step = param.Step
	}
	slider.SetValue(value)
	slider.OnChanged = func(v float64) {
		valueLabel.SetText(formatParam(param, v))
		pp.params[param.Name] = v
		pp.submit()
	}

	return container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel(param.Label), valueLabel),
		slider,
	)
}

func (pp *PropertiesPanel) createEntry(param algorithms.ParameterInfo) fyne.CanvasObject {
	value, _ := pp.params[param.Name].(float64)

	entry := widget.NewEntry()
	entry.SetText(strconv.FormatFloat(value, 'g', -1, 64))
	entry.Validator = func(s string) error {
		_, err := strconv.ParseFloat(s, 64)
		return err
	}
	entry.OnChanged = func(s string) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return
		}
		pp.params[param.Name] = v
		pp.submit()
	}

	return widget.NewForm(widget.NewFormItem(param.Label, entry))
}

func formatParam(param algorithms.ParameterInfo, v float64) string {
	if param.Type == "int" {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func (pp *PropertiesPanel) submit() {
	if !pp.enabled || pp.currentAlgorithm == "" {
		return
	}
	if err := pp.pipeline.SetRequest(pp.currentAlgorithm, pp.params); err != nil {
		pp.logger.WithError(err).Warn("Rejected transformation parameters")
		if pp.onError != nil {
			pp.onError(err)
		}
	}
}

func (pp *PropertiesPanel) onEngineChanged() {
	if pp.backendSelect == nil || pp.interpSelect == nil || pp.borderSelect == nil {
		return
	}

	cfg := pp.cfg
	cfg.Backend = pp.backendSelect.Selected
	cfg.Interpolation = pp.interpSelect.Selected
	cfg.Border.Mode = pp.borderSelect.Selected

	opts, err := cfg.TransformOptions()
	if err != nil {
		pp.logger.WithError(err).Warn("Invalid engine settings")
		return
	}
	pp.cfg = cfg

	pp.logger.WithFields(logrus.Fields{
		"backend":       cfg.Backend,
		"interpolation": cfg.Interpolation,
		"border":        cfg.Border.Mode,
	}).Info("Engine settings changed")

	pp.pipeline.SetEngine(cfg.Factory(), opts...)
}
