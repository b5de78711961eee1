// Result metrics shown next to the images
package gui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/samber/lo"

	"geometric-transformations/internal/metrics"
)

// MetricsPanel lists the metrics of the latest result
type MetricsPanel struct {
	evaluator      *metrics.Evaluator
	content        *fyne.Container
	card           *widget.Card
	currentMetrics map[string]float64
}

func NewMetricsPanel() *MetricsPanel {
	mp := &MetricsPanel{
		evaluator:      metrics.NewEvaluator(),
		currentMetrics: make(map[string]float64),
	}
	mp.content = container.NewVBox(
		widget.NewLabel("Metrics will appear here once a transformation has run."),
	)
	mp.card = widget.NewCard("Quality Metrics", "Compared with the original", mp.content)
	return mp
}

func (mp *MetricsPanel) GetContainer() fyne.CanvasObject {
	return mp.card
}

func (mp *MetricsPanel) UpdateMetrics(m map[string]float64) {
	mp.currentMetrics = m
	mp.refreshMetricsDisplay()
}

func (mp *MetricsPanel) Clear() {
	mp.currentMetrics = make(map[string]float64)
	mp.content.RemoveAll()
	mp.content.Add(widget.NewLabel("No result yet"))
	mp.content.Refresh()
}

func (mp *MetricsPanel) refreshMetricsDisplay() {
	mp.content.RemoveAll()

	names := lo.Keys(mp.currentMetrics)
	sort.Strings(names)
	info := mp.evaluator.GetMetricInfo()

	for _, name := range names {
		title := name
		if mi, ok := info[name]; ok {
			title = mi.Name
		}
		mp.content.Add(container.NewBorder(nil, nil,
			widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(metrics.Format(name, mp.currentMetrics[name])),
		))
	}
	mp.content.Refresh()
}
