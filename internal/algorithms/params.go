package algorithms

import (
	"fmt"
	"math"

	"geometric-transformations/internal/geometry"
	"geometric-transformations/internal/transform"
)

// floatParam reads a numeric parameter. Slider and entry widgets hand
// back float64; the CLI and tests may pass ints.
func floatParam(params map[string]interface{}, name string) (float64, error) {
	val, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing parameter %s", transform.ErrInvalidParameter, name)
	}

	var v float64
	switch n := val.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	default:
		return 0, fmt.Errorf("%w: parameter %s must be a number, got %T", transform.ErrInvalidParameter, name, val)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: parameter %s must be finite", transform.ErrInvalidParameter, name)
	}
	return v, nil
}

func rangeParam(params map[string]interface{}, name string, min, max float64) (float64, error) {
	v, err := floatParam(params, name)
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%w: %s must be between %g and %g", transform.ErrInvalidParameter, name, min, max)
	}
	return v, nil
}

// pointParams reads n destination points stored as x1, y1, x2, y2, ...
func pointParams(params map[string]interface{}, n int) ([]geometry.Point, error) {
	pts := make([]geometry.Point, n)
	for i := range pts {
		x, err := floatParam(params, xKey(i))
		if err != nil {
			return nil, err
		}
		y, err := floatParam(params, yKey(i))
		if err != nil {
			return nil, err
		}
		pts[i] = geometry.Pt(x, y)
	}
	return pts, nil
}

func xKey(i int) string { return fmt.Sprintf("x%d", i+1) }
func yKey(i int) string { return fmt.Sprintf("y%d", i+1) }

// pointInfo describes editable output points defaulting to pts.
func pointInfo(pts []geometry.Point) []ParameterInfo {
	info := make([]ParameterInfo, 0, 2*len(pts))
	for i, p := range pts {
		info = append(info,
			ParameterInfo{
				Name:        xKey(i),
				Label:       fmt.Sprintf("Output x%d", i+1),
				Type:        "float",
				Default:     p.X,
				Description: fmt.Sprintf("Horizontal position of output point %d", i+1),
			},
			ParameterInfo{
				Name:        yKey(i),
				Label:       fmt.Sprintf("Output y%d", i+1),
				Type:        "float",
				Default:     p.Y,
				Description: fmt.Sprintf("Vertical position of output point %d", i+1),
			},
		)
	}
	return info
}

func defaults(info []ParameterInfo) map[string]interface{} {
	params := make(map[string]interface{}, len(info))
	for _, p := range info {
		params[p.Name] = p.Default
	}
	return params
}
