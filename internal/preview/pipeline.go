// Debounced live preview of the selected transformation
package preview

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"

	"geometric-transformations/internal/algorithms"
	"geometric-transformations/internal/core"
	"geometric-transformations/internal/metrics"
	"geometric-transformations/internal/transform"
)

// DefaultDelay is how long the pipeline waits for further control changes
// before recomputing.
const DefaultDelay = 200 * time.Millisecond

// Result is one computed transformation.
type Result struct {
	Algorithm string
	Kind      transform.Kind
	Image     *core.Image
	Metrics   map[string]float64
	Elapsed   time.Duration
}

// Pipeline recomputes the selected transformation of the loaded image
// whenever the request changes. Results are stored in the shared
// ImageData and delivered to the callbacks on the UI thread.
type Pipeline struct {
	mu          sync.Mutex
	imageData   *core.ImageData
	factory     transform.Factory
	options     []transform.Option
	metricsEval *metrics.Evaluator
	logger      *logrus.Logger

	algorithm string
	params    map[string]interface{}

	processing bool
	cancel     context.CancelFunc

	// Callbacks receive Go images only
	onPreviewUpdate func(preview image.Image, metrics map[string]float64)
	onError         func(error)
	dispatch        func(func())

	previewTimer *time.Timer
	previewDelay time.Duration
	realtimeMode bool
}

func NewPipeline(imageData *core.ImageData, factory transform.Factory, logger *logrus.Logger) *Pipeline {
	if factory == nil {
		factory = transform.NewEngine
	}
	return &Pipeline{
		imageData:    imageData,
		factory:      factory,
		metricsEval:  metrics.NewEvaluator(),
		logger:       logger,
		dispatch:     fyne.Do,
		previewDelay: DefaultDelay,
		realtimeMode: true,
	}
}

// SetCallbacks sets preview update and error callbacks
func (p *Pipeline) SetCallbacks(
	onPreviewUpdate func(image.Image, map[string]float64),
	onError func(error),
) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onPreviewUpdate = onPreviewUpdate
	p.onError = onError
}

// SetDispatcher replaces fyne.Do as the way callbacks reach the UI thread.
func (p *Pipeline) SetDispatcher(dispatch func(func())) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dispatch = dispatch
}

// SetDelay changes the debounce interval.
func (p *Pipeline) SetDelay(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.previewDelay = d
}

// SetRealtime enables or disables recomputing on every request change.
func (p *Pipeline) SetRealtime(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.realtimeMode = enabled
}

// SetEngine switches the backend and its options and schedules a refresh.
func (p *Pipeline) SetEngine(factory transform.Factory, opts ...transform.Option) {
	p.mu.Lock()
	if factory != nil {
		p.factory = factory
	}
	p.options = opts
	p.mu.Unlock()

	p.logger.WithField("options", len(opts)).Debug("Preview engine changed")
	p.trigger()
}

// SetRequest selects the algorithm and its parameters and schedules a
// refresh. The parameters are validated immediately.
func (p *Pipeline) SetRequest(algorithm string, params map[string]interface{}) error {
	if !algorithms.IsValidAlgorithm(algorithm) {
		return fmt.Errorf("%w: unknown algorithm: %s", transform.ErrInvalidParameter, algorithm)
	}
	if err := algorithms.ValidateParameters(algorithm, params); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	copied := make(map[string]interface{}, len(params))
	for k, v := range params {
		copied[k] = v
	}

	p.mu.Lock()
	p.algorithm = algorithm
	p.params = copied
	p.mu.Unlock()

	p.logger.WithFields(logrus.Fields{
		"algorithm": algorithm,
		"params":    copied,
	}).Debug("Preview request updated")

	p.trigger()
	return nil
}

// Request returns the current algorithm and a copy of its parameters.
func (p *Pipeline) Request() (string, map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	params := make(map[string]interface{}, len(p.params))
	for k, v := range p.params {
		params[k] = v
	}
	return p.algorithm, params
}

// ProcessNow runs the current request synchronously and stores the result.
func (p *Pipeline) ProcessNow() (*Result, error) {
	p.mu.Lock()
	algorithm, params := p.algorithm, p.params
	factory, opts := p.factory, p.options
	p.mu.Unlock()

	result, err := p.run(algorithm, params, factory, opts)
	if err != nil {
		return nil, err
	}
	if err := p.imageData.SetProcessed(result.Image, result.Algorithm); err != nil {
		return nil, err
	}
	return result, nil
}

// Stop cancels pending and running preview work.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.previewTimer != nil {
		p.previewTimer.Stop()
	}
	if p.cancel != nil {
		p.cancel()
	}
}

// trigger starts debounced preview processing
func (p *Pipeline) trigger() {
	if !p.imageData.HasImage() {
		p.logger.Debug("No image available for preview processing")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.realtimeMode || p.algorithm == "" {
		return
	}
	if p.previewTimer != nil {
		p.previewTimer.Stop()
	}

	p.logger.WithField("delay_ms", p.previewDelay.Milliseconds()).Debug("Scheduling preview processing")
	p.previewTimer = time.AfterFunc(p.previewDelay, p.processPreview)
}

// processPreview computes the current request in the background. A newer
// run cancels older ones; cancelled results are dropped.
func (p *Pipeline) processPreview() {
	p.mu.Lock()
	if p.processing && p.cancel != nil {
		p.logger.Debug("Already processing, cancelling previous")
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.processing = true
	p.cancel = cancel
	algorithm, params := p.algorithm, p.params
	factory, opts := p.factory, p.options
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			if ctx.Err() == nil {
				p.processing = false
				p.cancel = nil
			}
			p.mu.Unlock()
			cancel()
		}()

		result, err := p.run(algorithm, params, factory, opts)
		if ctx.Err() != nil {
			p.logger.WithField("algorithm", algorithm).Debug("Preview superseded, dropping result")
			return
		}

		if err == nil {
			err = p.imageData.SetProcessed(result.Image, result.Algorithm)
		}
		if err != nil {
			p.logger.WithError(err).WithField("algorithm", algorithm).Error("Preview processing failed")
			p.notifyError(err)
			return
		}

		p.logger.WithFields(logrus.Fields{
			"algorithm":  algorithm,
			"size":       result.Image.String(),
			"elapsed_ms": result.Elapsed.Milliseconds(),
		}).Info("Preview processing completed")

		p.notifyPreview(result.Image.ToImage(), result.Metrics)
	}()
}

func (p *Pipeline) run(algorithm string, params map[string]interface{}, factory transform.Factory, opts []transform.Option) (*Result, error) {
	if algorithm == "" {
		return nil, fmt.Errorf("%w: no transformation selected", transform.ErrInvalidParameter)
	}
	src := p.imageData.GetOriginal()
	if src == nil {
		return nil, fmt.Errorf("no image loaded")
	}

	req, err := algorithms.Build(algorithm, src.Width, src.Height, params)
	if err != nil {
		return nil, err
	}

	engine, err := factory(src, opts...)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := transform.Apply(engine, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", algorithm, err)
	}

	return &Result{
		Algorithm: algorithm,
		Kind:      req.Kind(),
		Image:     out,
		Metrics:   p.metricsEval.EvaluateStep(src, out, string(req.Kind())),
		Elapsed:   time.Since(start),
	}, nil
}

func (p *Pipeline) notifyPreview(img image.Image, m map[string]float64) {
	p.mu.Lock()
	cb, dispatch := p.onPreviewUpdate, p.dispatch
	p.mu.Unlock()
	if cb != nil {
		dispatch(func() { cb(img, m) })
	}
}

func (p *Pipeline) notifyError(err error) {
	p.mu.Lock()
	cb, dispatch := p.onError, p.dispatch
	p.mu.Unlock()
	if cb != nil {
		dispatch(func() { cb(err) })
	}
}
