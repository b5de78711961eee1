// Package geometry holds the planar math behind the transformations:
// points, 2x3 affine matrices, 3x3 homographies and the small fixed-size
// solvers that recover them from point correspondences.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ErrSingular is returned when a system of equations or a matrix has no
// unique solution or inverse.
var ErrSingular = errors.New("singular matrix")

// collinearTolerance is relative to the squared lengths of the triangle edges.
const collinearTolerance = 1e-10

// Point is a position in image space. X is the column, Y the row.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Collinear reports whether a, b and c lie on one line, including the case
// where two of them coincide.
func Collinear(a, b, c Point) bool {
	ab := b.Sub(a)
	ac := c.Sub(a)
	cross := ab.X*ac.Y - ab.Y*ac.X
	scale := ab.X*ab.X + ab.Y*ab.Y + ac.X*ac.X + ac.Y*ac.Y
	if scale == 0 {
		return true
	}
	return math.Abs(cross) <= collinearTolerance*scale
}

// AnyCollinear reports whether any three of the points are collinear.
func AnyCollinear(pts []Point) bool {
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			for k := j + 1; k < len(pts); k++ {
				if Collinear(pts[i], pts[j], pts[k]) {
					return true
				}
			}
		}
	}
	return false
}

// ParsePoints parses a list of points written as "x,y;x,y;...".
func ParsePoints(s string) ([]Point, error) {
	fields := lo.Filter(strings.Split(s, ";"), func(f string, _ int) bool {
		return strings.TrimSpace(f) != ""
	})

	pts := make([]Point, 0, len(fields))
	for _, f := range fields {
		xy := strings.Split(f, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("point %q: want x,y", f)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", f, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", f, err)
		}
		pts = append(pts, Pt(x, y))
	}
	return pts, nil
}

// FormatPoints is the inverse of ParsePoints.
func FormatPoints(pts []Point) string {
	return strings.Join(lo.Map(pts, func(p Point, _ int) string {
		return strconv.FormatFloat(p.X, 'g', -1, 64) + "," + strconv.FormatFloat(p.Y, 'g', -1, 64)
	}), ";")
}
