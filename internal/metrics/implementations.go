// Concrete implementations of comparison metrics
package metrics

import (
	"math"

	"geometric-transformations/internal/core"
)

// MSE implements the mean squared error over all samples
type MSE struct{}

// NewMSE creates a new MSE metric
func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(reference, processed *core.Image) (float64, error) {
	if err := checkPair(reference, processed); err != nil {
		return 0, err
	}
	return meanSquaredError(reference, processed), nil
}

func (m *MSE) GetName() string              { return "MSE" }
func (m *MSE) GetDescription() string       { return "Mean Squared Error over all samples" }
func (m *MSE) GetRange() (float64, float64) { return 0, 65025 }
func (m *MSE) IsHigherBetter() bool         { return false }

// PSNR implements Peak Signal-to-Noise Ratio
type PSNR struct{}

// NewPSNR creates a new PSNR metric
func NewPSNR() *PSNR {
	return &PSNR{}
}

func (p *PSNR) Calculate(reference, processed *core.Image) (float64, error) {
	if err := checkPair(reference, processed); err != nil {
		return 0, err
	}

	mse := meanSquaredError(reference, processed)
	if mse == 0 {
		return math.Inf(1), nil // Perfect match
	}

	maxVal := 255.0
	return 20 * math.Log10(maxVal/math.Sqrt(mse)), nil
}

func (p *PSNR) GetName() string              { return "PSNR" }
func (p *PSNR) GetDescription() string       { return "Peak Signal-to-Noise Ratio in dB" }
func (p *PSNR) GetRange() (float64, float64) { return 0, 100 } // Practical range, can go higher
func (p *PSNR) IsHigherBetter() bool         { return true }

// MaxAbsDiff implements the largest per-sample difference
type MaxAbsDiff struct{}

// NewMaxAbsDiff creates a new MaxAbsDiff metric
func NewMaxAbsDiff() *MaxAbsDiff {
	return &MaxAbsDiff{}
}

func (d *MaxAbsDiff) Calculate(reference, processed *core.Image) (float64, error) {
	if err := checkPair(reference, processed); err != nil {
		return 0, err
	}

	worst := 0
	for i, a := range reference.Pix {
		diff := int(a) - int(processed.Pix[i])
		if diff < 0 {
			diff = -diff
		}
		if diff > worst {
			worst = diff
		}
	}
	return float64(worst), nil
}

func (d *MaxAbsDiff) GetName() string              { return "Max |Δ|" }
func (d *MaxAbsDiff) GetDescription() string       { return "Largest absolute difference of any sample" }
func (d *MaxAbsDiff) GetRange() (float64, float64) { return 0, 255 }
func (d *MaxAbsDiff) IsHigherBetter() bool         { return false }

func meanSquaredError(a, b *core.Image) float64 {
	sum := 0.0
	for i, v := range a.Pix {
		diff := float64(v) - float64(b.Pix[i])
		sum += diff * diff
	}
	return sum / float64(len(a.Pix))
}
