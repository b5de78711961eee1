// Image decoding, PNG encoding and output naming
package imgio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"geometric-transformations/internal/core"
	"geometric-transformations/internal/opencv"
)

var supportedFormats = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"}

// ImageLoader handles image file operations
type ImageLoader struct {
	logger *logrus.Logger
}

func NewImageLoader(logger *logrus.Logger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// Decode decodes an uploaded image. Color images come back in RGB(A)
// order; gray images keep one channel.
func (il *ImageLoader) Decode(data []byte) (*core.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no image data")
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadUnchanged)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("failed to decode image (%d bytes)", len(data))
	}

	if err := toRGBOrder(&mat); err != nil {
		return nil, err
	}

	img, err := opencv.FromMat(mat)
	if err != nil {
		return nil, fmt.Errorf("converting decoded image: %w", err)
	}

	il.logger.WithFields(logrus.Fields{
		"width":    img.Width,
		"height":   img.Height,
		"channels": img.Channels,
		"bytes":    len(data),
	}).Debug("Image decoded")

	return img, nil
}

// LoadImage reads and decodes an image file
func (il *ImageLoader) LoadImage(path string) (*core.Image, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	if !IsSupportedImageFormat(path) {
		return nil, fmt.Errorf("unsupported image format: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	img, err := il.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    img.Width,
		"height":   img.Height,
		"channels": img.Channels,
	}).Info("Image loaded successfully")

	return img, nil
}

// EncodePNG serializes img as PNG
func (il *ImageLoader) EncodePNG(img *core.Image) ([]byte, error) {
	if err := core.ValidateImage(img); err != nil {
		return nil, fmt.Errorf("cannot encode: %w", err)
	}

	mat, err := opencv.ToMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	if err := toBGROrder(&mat); err != nil {
		return nil, err
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// SaveImage writes img as PNG
func (il *ImageLoader) SaveImage(img *core.Image, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".png" {
		return fmt.Errorf("unsupported output format %q: results are saved as .png", ext)
	}

	data, err := il.EncodePNG(img)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    img.Width,
		"height":   img.Height,
		"channels": img.Channels,
		"bytes":    len(data),
	}).Info("Image saved successfully")

	return nil
}

// IsSupportedImageFormat checks the file extension
func IsSupportedImageFormat(path string) bool {
	return lo.Contains(supportedFormats, strings.ToLower(filepath.Ext(path)))
}

// SupportedExtensions lists the accepted input extensions
func SupportedExtensions() []string {
	return append([]string(nil), supportedFormats...)
}

func (il *ImageLoader) GetSupportedFormats() []string {
	return []string{"JPEG", "PNG", "TIFF", "BMP"}
}

// toRGBOrder converts OpenCV's BGR(A) channel order in place.
func toRGBOrder(mat *gocv.Mat) error {
	return swapRedBlue(mat, gocv.ColorBGRToRGB, gocv.ColorBGRAToRGBA)
}

// toBGROrder converts RGB(A) into OpenCV's channel order in place.
func toBGROrder(mat *gocv.Mat) error {
	return swapRedBlue(mat, gocv.ColorRGBToBGR, gocv.ColorRGBAToBGRA)
}

func swapRedBlue(mat *gocv.Mat, three, four gocv.ColorConversionCode) error {
	var code gocv.ColorConversionCode
	switch mat.Channels() {
	case 3:
		code = three
	case 4:
		code = four
	default:
		return nil
	}

	out := gocv.NewMat()
	if err := gocv.CvtColor(*mat, &out, code); err != nil {
		out.Close()
		return fmt.Errorf("converting channel order: %w", err)
	}
	if out.Empty() {
		out.Close()
		return fmt.Errorf("converting channel order failed")
	}
	mat.Close()
	*mat = out
	return nil
}
