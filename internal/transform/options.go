package transform

import (
	"fmt"
	"strings"
)

// Interpolation selects how warps sample the source between pixel centres.
// Scaling always uses bicubic interpolation.
type Interpolation int

const (
	Bilinear Interpolation = iota
	Nearest
)

func (i Interpolation) String() string {
	switch i {
	case Nearest:
		return "nearest"
	default:
		return "bilinear"
	}
}

// ParseInterpolation accepts "bilinear" or "nearest".
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bilinear", "linear":
		return Bilinear, nil
	case "nearest":
		return Nearest, nil
	}
	return Bilinear, fmt.Errorf("%w: unknown interpolation %q", ErrInvalidParameter, s)
}

// BorderMode decides what warps read for source positions outside the image.
type BorderMode int

const (
	// BorderConstant reads Options.BorderValue.
	BorderConstant BorderMode = iota
	// BorderReplicate reads the nearest edge pixel.
	BorderReplicate
)

func (b BorderMode) String() string {
	switch b {
	case BorderReplicate:
		return "replicate"
	default:
		return "constant"
	}
}

// ParseBorderMode accepts "constant" or "replicate".
func ParseBorderMode(s string) (BorderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "constant":
		return BorderConstant, nil
	case "replicate", "edge":
		return BorderReplicate, nil
	}
	return BorderConstant, fmt.Errorf("%w: unknown border mode %q", ErrInvalidParameter, s)
}

// Options configure an engine. The zero value is bilinear warps with a
// constant black border.
type Options struct {
	Interpolation Interpolation
	Border        BorderMode
	BorderValue   [4]uint8 // per channel, used by BorderConstant
}

// Option mutates Options.
type Option func(*Options)

// WithInterpolation sets the warp interpolation.
func WithInterpolation(i Interpolation) Option {
	return func(o *Options) {
		o.Interpolation = i
	}
}

// WithBorder sets the border mode and, for BorderConstant, the fill value
// per channel. Missing channels are zero.
func WithBorder(mode BorderMode, value ...uint8) Option {
	return func(o *Options) {
		o.Border = mode
		o.BorderValue = [4]uint8{}
		copy(o.BorderValue[:], value)
	}
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
