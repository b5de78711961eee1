package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geometric-transformations/internal/core"
	"geometric-transformations/internal/transform"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "geotransform.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 200*time.Millisecond, cfg.PreviewDelay())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
backend = "opencv"
interpolation = "nearest"

[border]
mode = "constant"
value = [255, 128, 0]

[preview]
delay_ms = 50

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendOpenCV, cfg.Backend)
	assert.Equal(t, 50*time.Millisecond, cfg.PreviewDelay())
	assert.Equal(t, 1024, cfg.Preview.MaxDimension, "unset keys keep defaults")
	assert.Equal(t, ".", cfg.Output.Dir)

	opts, err := cfg.TransformOptions()
	require.NoError(t, err)
	o := transform.NewOptions(opts...)
	assert.Equal(t, transform.Nearest, o.Interpolation)
	assert.Equal(t, transform.BorderConstant, o.Border)
	assert.Equal(t, [4]uint8{255, 128, 0, 0}, o.BorderValue)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"backend", `backend = "cuda"`},
		{"interpolation", `interpolation = "lanczos"`},
		{"border mode", "[border]\nmode = \"wrap\""},
		{"border channels", "[border]\nvalue = [1, 2, 3, 4, 5]"},
		{"border range", "[border]\nvalue = [256]"},
		{"delay", "[preview]\ndelay_ms = -1"},
		{"log level", "[log]\nlevel = \"loud\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, transform.ErrInvalidParameter)
		})
	}

	_, err := Load(writeConfig(t, "backend = "))
	assert.Error(t, err, "syntax errors are reported")
}

func TestFactorySelectsBackend(t *testing.T) {
	cfg := Default()
	img := transformTestImage()

	e, err := cfg.Factory()(img)
	require.NoError(t, err)
	_, native := e.(*transform.Transformer)
	assert.True(t, native)

	cfg.Backend = BackendOpenCV
	e, err = cfg.Factory()(img)
	require.NoError(t, err)
	_, native = e.(*transform.Transformer)
	assert.False(t, native)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"

	logger := cfg.NewLogger(false)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = cfg.NewLogger(true)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func transformTestImage() *core.Image {
	img := core.NewImage(8, 6, 3)
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	return img
}
