// Metrics for comparing a transformation result with a reference image
package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"geometric-transformations/internal/core"
)

// ErrShapeMismatch is returned when the two images differ in width,
// height or channel count.
var ErrShapeMismatch = errors.New("image shapes differ")

// Metric defines the interface for comparison metrics
type Metric interface {
	// Calculate computes the metric value
	Calculate(reference, processed *core.Image) (float64, error)

	// GetName returns the metric name
	GetName() string

	// GetDescription returns the metric description
	GetDescription() string

	// GetRange returns the practical value range (min, max)
	GetRange() (float64, float64)

	// IsHigherBetter returns true if higher values mean closer images
	IsHigherBetter() bool
}

// Evaluator manages and calculates multiple metrics
type Evaluator struct {
	metrics map[string]Metric
}

// NewEvaluator creates an evaluator with the default metrics registered
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
	}
	e.RegisterDefaultMetrics()
	return e
}

// RegisterDefaultMetrics registers all default metrics
func (e *Evaluator) RegisterDefaultMetrics() {
	e.Register("mse", NewMSE())
	e.Register("psnr", NewPSNR())
	e.Register("max_abs_diff", NewMaxAbsDiff())
}

// Register registers a metric
func (e *Evaluator) Register(name string, metric Metric) {
	e.metrics[name] = metric
}

// Names returns the registered metric names, sorted
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.metrics))
	for name := range e.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a registered metric
func (e *Evaluator) Get(name string) (Metric, bool) {
	m, ok := e.metrics[name]
	return m, ok
}

// Calculate calculates a specific metric
func (e *Evaluator) Calculate(name string, reference, processed *core.Image) (float64, error) {
	metric, exists := e.metrics[name]
	if !exists {
		return 0, fmt.Errorf("metric not found: %s", name)
	}
	return metric.Calculate(reference, processed)
}

// CalculateAll calculates all registered metrics. Metrics that fail are
// left out.
func (e *Evaluator) CalculateAll(reference, processed *core.Image) map[string]float64 {
	results := make(map[string]float64)
	for name, metric := range e.metrics {
		if value, err := metric.Calculate(reference, processed); err == nil {
			results[name] = value
		}
	}
	return results
}

// CalculatePSNR calculates PSNR between two images
func (e *Evaluator) CalculatePSNR(reference, processed *core.Image) (float64, error) {
	return e.Calculate("psnr", reference, processed)
}

// EvaluateStep compares a result with the image it was computed from.
// Scaling changes the canvas, so only the output size is reported for it.
func (e *Evaluator) EvaluateStep(before, after *core.Image, kind string) map[string]float64 {
	if before == nil || after == nil {
		return map[string]float64{}
	}
	if kind == "scale" || !sameShape(before, after) {
		return map[string]float64{
			"width":  float64(after.Width),
			"height": float64(after.Height),
		}
	}
	return e.CalculateAll(before, after)
}

// MetricInfo provides metadata about a metric
type MetricInfo struct {
	Name         string
	Description  string
	Range        [2]float64 // [min, max]
	HigherBetter bool
}

// GetMetricInfo describes every registered metric
func (e *Evaluator) GetMetricInfo() map[string]MetricInfo {
	info := make(map[string]MetricInfo, len(e.metrics))
	for name, metric := range e.metrics {
		lo, hi := metric.GetRange()
		info[name] = MetricInfo{
			Name:         metric.GetName(),
			Description:  metric.GetDescription(),
			Range:        [2]float64{lo, hi},
			HigherBetter: metric.IsHigherBetter(),
		}
	}
	return info
}

// Format renders a metric value for display.
func Format(name string, value float64) string {
	switch {
	case math.IsInf(value, 1):
		return "∞"
	case name == "width" || name == "height" || name == "max_abs_diff":
		return fmt.Sprintf("%.0f", value)
	default:
		return fmt.Sprintf("%.3f", value)
	}
}

func sameShape(a, b *core.Image) bool {
	return a.Width == b.Width && a.Height == b.Height && a.Channels == b.Channels
}

func checkPair(reference, processed *core.Image) error {
	if reference.Empty() || processed.Empty() {
		return fmt.Errorf("empty images")
	}
	if !sameShape(reference, processed) {
		return fmt.Errorf("%w: %s vs %s", ErrShapeMismatch, reference, processed)
	}
	return nil
}
