// Application configuration loaded from a TOML file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"geometric-transformations/internal/opencv"
	"geometric-transformations/internal/transform"
)

const (
	BackendNative = "native"
	BackendOpenCV = "opencv"
)

// Config holds every tunable of the app and the CLI.
type Config struct {
	Backend       string        `toml:"backend"`
	Interpolation string        `toml:"interpolation"`
	Border        BorderConfig  `toml:"border"`
	Preview       PreviewConfig `toml:"preview"`
	Output        OutputConfig  `toml:"output"`
	Log           LogConfig     `toml:"log"`
}

type BorderConfig struct {
	Mode  string `toml:"mode"`
	Value []int  `toml:"value"` // per channel, 0-255
}

type PreviewConfig struct {
	DelayMS      int `toml:"delay_ms"`
	MaxDimension int `toml:"max_dimension"`
}

type OutputConfig struct {
	Dir string `toml:"dir"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend:       BackendNative,
		Interpolation: transform.Bilinear.String(),
		Border: BorderConfig{
			Mode: transform.BorderConstant.String(),
		},
		Preview: PreviewConfig{
			DelayMS:      200,
			MaxDimension: 1024,
		},
		Output: OutputConfig{Dir: "."},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path or a missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated fields and the numeric limits.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendNative, BackendOpenCV:
	default:
		return fmt.Errorf("%w: unknown backend %q", transform.ErrInvalidParameter, c.Backend)
	}
	if _, err := c.TransformOptions(); err != nil {
		return err
	}
	if len(c.Border.Value) > 4 {
		return fmt.Errorf("%w: border value has %d channels", transform.ErrInvalidParameter, len(c.Border.Value))
	}
	if _, bad := lo.Find(c.Border.Value, func(v int) bool { return v < 0 || v > 255 }); bad {
		return fmt.Errorf("%w: border values must be between 0 and 255", transform.ErrInvalidParameter)
	}
	if c.Preview.DelayMS < 0 {
		return fmt.Errorf("%w: preview delay must not be negative", transform.ErrInvalidParameter)
	}
	if c.Preview.MaxDimension < 0 {
		return fmt.Errorf("%w: preview max dimension must not be negative", transform.ErrInvalidParameter)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", transform.ErrInvalidParameter, err)
	}
	return nil
}

// TransformOptions converts the interpolation and border settings.
func (c Config) TransformOptions() ([]transform.Option, error) {
	interp, err := transform.ParseInterpolation(c.Interpolation)
	if err != nil {
		return nil, err
	}
	border, err := transform.ParseBorderMode(c.Border.Mode)
	if err != nil {
		return nil, err
	}
	return []transform.Option{
		transform.WithInterpolation(interp),
		transform.WithBorder(border, lo.Map(c.Border.Value, func(v int, _ int) uint8 {
			return uint8(max(0, min(255, v)))
		})...),
	}, nil
}

// Factory returns the engine constructor for the configured backend.
func (c Config) Factory() transform.Factory {
	if strings.EqualFold(c.Backend, BackendOpenCV) {
		return opencv.NewEngine
	}
	return transform.NewEngine
}

// PreviewDelay is the debounce interval of the live preview.
func (c Config) PreviewDelay() time.Duration {
	return time.Duration(c.Preview.DelayMS) * time.Millisecond
}

// NewLogger builds the application logger: colored text in debug mode,
// JSON otherwise.
func (c Config) NewLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debug {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		return logger
	}

	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}
