// Image session data shared between the GUI and the preview pipeline
package core

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// ImageData manages the uploaded image and the latest transformation
// result with thread safety
type ImageData struct {
	mu        sync.RWMutex
	original  *Image
	processed *Image
	kind      string
	hasImage  bool
	filepath  string
	metadata  ImageMetadata
}

// ImageMetadata contains image information
type ImageMetadata struct {
	Width    int
	Height   int
	Channels int
	Format   string
	Size     int64 // Encoded size in bytes
}

// NewImageData creates a new thread-safe image data container
func NewImageData() *ImageData {
	return &ImageData{}
}

// SetOriginal stores a copy of the uploaded image and drops any previous result
func (img *ImageData) SetOriginal(src *Image, path string, size int64) error {
	if err := ValidateImage(src); err != nil {
		return fmt.Errorf("cannot set original: %w", err)
	}

	img.mu.Lock()
	defer img.mu.Unlock()

	img.original = src.Clone()
	img.processed = nil
	img.kind = ""
	img.hasImage = true
	img.filepath = path
	img.metadata = ImageMetadata{
		Width:    src.Width,
		Height:   src.Height,
		Channels: src.Channels,
		Format:   getFormatFromPath(path),
		Size:     size,
	}

	return nil
}

// SetProcessed stores the result of the given transformation kind
func (img *ImageData) SetProcessed(result *Image, kind string) error {
	img.mu.Lock()
	defer img.mu.Unlock()

	if !img.hasImage {
		return fmt.Errorf("no original image loaded")
	}

	if result.Empty() {
		return fmt.Errorf("cannot set empty processed image")
	}

	img.processed = result
	img.kind = kind
	return nil
}

// GetOriginal returns the original image. Callers must not modify it.
func (img *ImageData) GetOriginal() *Image {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.original
}

// GetProcessed returns the latest result and the kind that produced it
func (img *ImageData) GetProcessed() (*Image, string) {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.processed, img.kind
}

// HasImage returns true if an image is loaded
func (img *ImageData) HasImage() bool {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.hasImage
}

// GetMetadata returns image metadata
func (img *ImageData) GetMetadata() ImageMetadata {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.metadata
}

// GetFilepath returns the current file path
func (img *ImageData) GetFilepath() string {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.filepath
}

// Clear clears all image data
func (img *ImageData) Clear() {
	img.mu.Lock()
	defer img.mu.Unlock()

	img.original = nil
	img.processed = nil
	img.kind = ""
	img.hasImage = false
	img.filepath = ""
	img.metadata = ImageMetadata{}
}

// ResetToOriginal discards the current result
func (img *ImageData) ResetToOriginal() error {
	img.mu.Lock()
	defer img.mu.Unlock()

	if !img.hasImage {
		return fmt.Errorf("no original image available")
	}

	img.processed = nil
	img.kind = ""
	return nil
}

// getFormatFromPath extracts image format from file path
func getFormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}
