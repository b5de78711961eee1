package imgio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutputName(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		kind, upload, want string
	}{
		{"Rotation", "cat.png", "Rotation_cat_20240309-140507.png"},
		{"Affine Transformation", "/tmp/uploads/holiday.photo.jpg", "Affine Transformation_holiday_20240309-140507.png"},
		{"Scaling", "noext", "Scaling_noext_20240309-140507.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputName(tt.kind, tt.upload, at))
	}
}

func TestIsSupportedImageFormat(t *testing.T) {
	assert.True(t, IsSupportedImageFormat("a.PNG"))
	assert.True(t, IsSupportedImageFormat("dir/b.jpeg"))
	assert.False(t, IsSupportedImageFormat("c.gif"))
	assert.False(t, IsSupportedImageFormat("png"))
}
