// Package opencv bridges core images and gocv matrices and provides an
// OpenCV-backed transform.Engine used as a reference implementation.
package opencv

import (
	"fmt"

	"gocv.io/x/gocv"

	"geometric-transformations/internal/core"
	"geometric-transformations/internal/geometry"
)

var matTypes = map[int]gocv.MatType{
	1: gocv.MatTypeCV8UC1,
	2: gocv.MatTypeCV8UC2,
	3: gocv.MatTypeCV8UC3,
	4: gocv.MatTypeCV8UC4,
}

// ToMat copies img into a new 8-bit Mat with the same channel order. The
// caller owns the Mat and must Close it.
func ToMat(img *core.Image) (gocv.Mat, error) {
	mt, ok := matTypes[img.Channels]
	if !ok {
		return gocv.NewMat(), fmt.Errorf("unsupported channel count: %d", img.Channels)
	}
	data := make([]byte, len(img.Pix))
	copy(data, img.Pix)
	return gocv.NewMatFromBytes(img.Height, img.Width, mt, data)
}

// FromMat copies an 8-bit Mat into a core image.
func FromMat(mat gocv.Mat) (*core.Image, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("image is empty")
	}

	channels := mat.Channels()
	if mt, ok := matTypes[channels]; !ok || mat.Type() != mt {
		return nil, fmt.Errorf("unsupported matrix type %v", mat.Type())
	}

	img := &core.Image{
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: channels,
		Pix:      mat.ToBytes(),
	}
	if err := core.ValidateImage(img); err != nil {
		return nil, err
	}
	return img, nil
}

// affineMat writes m into a 2x3 CV_64F matrix.
func affineMat(m geometry.Affine) gocv.Mat {
	mat := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	rows := m.Rows()
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			mat.SetDoubleAt(r, c, rows[r][c])
		}
	}
	return mat
}

// readAffine reads a 2x3 CV_64F matrix.
func readAffine(mat gocv.Mat) geometry.Affine {
	return geometry.Affine{
		A: mat.GetDoubleAt(0, 0), B: mat.GetDoubleAt(0, 1), C: mat.GetDoubleAt(0, 2),
		D: mat.GetDoubleAt(1, 0), E: mat.GetDoubleAt(1, 1), F: mat.GetDoubleAt(1, 2),
	}
}

// readHomography reads a 3x3 CV_64F matrix.
func readHomography(mat gocv.Mat) geometry.Homography {
	var h geometry.Homography
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			h[r*3+c] = mat.GetDoubleAt(r, c)
		}
	}
	return h
}

func point2fVector(pts []geometry.Point) gocv.Point2fVector {
	out := make([]gocv.Point2f, len(pts))
	for i, p := range pts {
		out[i] = gocv.Point2f{X: float32(p.X), Y: float32(p.Y)}
	}
	return gocv.NewPoint2fVectorFromPoints(out)
}
