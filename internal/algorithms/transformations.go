package algorithms

import (
	"geometric-transformations/internal/geometry"
	"geometric-transformations/internal/transform"
)

// AffineSource returns the fixed source points of the affine control: the
// top corners and the centre.
func AffineSource(width, height int) [3]geometry.Point {
	w, h := float64(width), float64(height)
	return [3]geometry.Point{geometry.Pt(0, 0), geometry.Pt(w, 0), geometry.Pt(w/2, h/2)}
}

// ProjectiveSource returns the image corners in the order top-left,
// bottom-left, top-right, bottom-right.
func ProjectiveSource(width, height int) [4]geometry.Point {
	w, h := float64(width), float64(height)
	return [4]geometry.Point{geometry.Pt(0, 0), geometry.Pt(0, h), geometry.Pt(w, 0), geometry.Pt(w, h)}
}

// Scaling implements bicubic resizing
type Scaling struct{}

func NewScaling() *Scaling {
	return &Scaling{}
}

func (s *Scaling) Kind() transform.Kind { return transform.KindScale }

func (s *Scaling) GetName() string {
	return transform.KindScale.Label()
}

func (s *Scaling) GetDescription() string {
	return "Resize the image by independent horizontal and vertical factors using bicubic interpolation"
}

func (s *Scaling) GetParameterInfo(width, height int) []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "fx",
			Label:       "Scale factor in x direction",
			Type:        "float",
			Min:         0.1,
			Max:         3.0,
			Step:        0.01,
			Default:     1.0,
			Description: "Horizontal scale factor",
		},
		{
			Name:        "fy",
			Label:       "Scale factor in y direction",
			Type:        "float",
			Min:         0.1,
			Max:         3.0,
			Step:        0.01,
			Default:     1.0,
			Description: "Vertical scale factor",
		},
	}
}

func (s *Scaling) GetDefaultParams(width, height int) map[string]interface{} {
	return defaults(s.GetParameterInfo(width, height))
}

func (s *Scaling) Validate(params map[string]interface{}) error {
	if _, err := rangeParam(params, "fx", 0.1, 3.0); err != nil {
		return err
	}
	_, err := rangeParam(params, "fy", 0.1, 3.0)
	return err
}

func (s *Scaling) Build(width, height int, params map[string]interface{}) (transform.Request, error) {
	fx, err := floatParam(params, "fx")
	if err != nil {
		return nil, err
	}
	fy, err := floatParam(params, "fy")
	if err != nil {
		return nil, err
	}
	return transform.Scale{FX: fx, FY: fy}, nil
}

// Rotation turns the image about its centre
type Rotation struct{}

func NewRotation() *Rotation {
	return &Rotation{}
}

func (r *Rotation) Kind() transform.Kind { return transform.KindRotate }

func (r *Rotation) GetName() string {
	return transform.KindRotate.Label()
}

func (r *Rotation) GetDescription() string {
	return "Rotate the image counter-clockwise about its centre, keeping the canvas size"
}

func (r *Rotation) GetParameterInfo(width, height int) []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "angle",
			Label:       "Angle of rotation",
			Type:        "int",
			Min:         0.0,
			Max:         360.0,
			Step:        1,
			Default:     180.0,
			Description: "Rotation angle in degrees",
		},
	}
}

func (r *Rotation) GetDefaultParams(width, height int) map[string]interface{} {
	return defaults(r.GetParameterInfo(width, height))
}

func (r *Rotation) Validate(params map[string]interface{}) error {
	_, err := rangeParam(params, "angle", 0, 360)
	return err
}

func (r *Rotation) Build(width, height int, params map[string]interface{}) (transform.Request, error) {
	angle, err := floatParam(params, "angle")
	if err != nil {
		return nil, err
	}
	return transform.Rotate{Degrees: angle}, nil
}

// AffineTransformation maps three fixed source points onto editable
// output points
type AffineTransformation struct{}

func NewAffineTransformation() *AffineTransformation {
	return &AffineTransformation{}
}

func (a *AffineTransformation) Kind() transform.Kind { return transform.KindAffine }

func (a *AffineTransformation) GetName() string {
	return transform.KindAffine.Label()
}

func (a *AffineTransformation) GetDescription() string {
	return "Move the top corners and the centre of the image to the output points to stretch, shrink, rotate or shear it"
}

func (a *AffineTransformation) GetParameterInfo(width, height int) []ParameterInfo {
	src := AffineSource(width, height)
	return pointInfo(src[:])
}

func (a *AffineTransformation) GetDefaultParams(width, height int) map[string]interface{} {
	return defaults(a.GetParameterInfo(width, height))
}

func (a *AffineTransformation) Validate(params map[string]interface{}) error {
	_, err := pointParams(params, 3)
	return err
}

func (a *AffineTransformation) Build(width, height int, params map[string]interface{}) (transform.Request, error) {
	pts, err := pointParams(params, 3)
	if err != nil {
		return nil, err
	}
	req := transform.Affine{Src: AffineSource(width, height)}
	copy(req.Dst[:], pts)
	return req, nil
}

// Translation shifts the image
type Translation struct{}

func NewTranslation() *Translation {
	return &Translation{}
}

func (t *Translation) Kind() transform.Kind { return transform.KindTranslate }

func (t *Translation) GetName() string {
	return transform.KindTranslate.Label()
}

func (t *Translation) GetDescription() string {
	return "Shift the image by a pixel offset; uncovered pixels take the border value"
}

func (t *Translation) GetParameterInfo(width, height int) []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "dx",
			Label:       "Translation in x direction",
			Type:        "int",
			Min:         -500.0,
			Max:         500.0,
			Step:        1,
			Default:     0.0,
			Description: "Horizontal offset in pixels",
		},
		{
			Name:        "dy",
			Label:       "Translation in y direction",
			Type:        "int",
			Min:         -500.0,
			Max:         500.0,
			Step:        1,
			Default:     0.0,
			Description: "Vertical offset in pixels",
		},
	}
}

func (t *Translation) GetDefaultParams(width, height int) map[string]interface{} {
	return defaults(t.GetParameterInfo(width, height))
}

func (t *Translation) Validate(params map[string]interface{}) error {
	if _, err := rangeParam(params, "dx", -500, 500); err != nil {
		return err
	}
	_, err := rangeParam(params, "dy", -500, 500)
	return err
}

func (t *Translation) Build(width, height int, params map[string]interface{}) (transform.Request, error) {
	dx, err := floatParam(params, "dx")
	if err != nil {
		return nil, err
	}
	dy, err := floatParam(params, "dy")
	if err != nil {
		return nil, err
	}
	return transform.Translate{DX: dx, DY: dy}, nil
}

// Projective maps the image corners onto editable output points
type Projective struct{}

func NewProjective() *Projective {
	return &Projective{}
}

func (p *Projective) Kind() transform.Kind { return transform.KindProjective }

func (p *Projective) GetName() string {
	return transform.KindProjective.Label()
}

func (p *Projective) GetDescription() string {
	return "Move the four image corners to the output points to distort the perspective"
}

func (p *Projective) GetParameterInfo(width, height int) []ParameterInfo {
	src := ProjectiveSource(width, height)
	return pointInfo(src[:])
}

func (p *Projective) GetDefaultParams(width, height int) map[string]interface{} {
	return defaults(p.GetParameterInfo(width, height))
}

func (p *Projective) Validate(params map[string]interface{}) error {
	_, err := pointParams(params, 4)
	return err
}

func (p *Projective) Build(width, height int, params map[string]interface{}) (transform.Request, error) {
	pts, err := pointParams(params, 4)
	if err != nil {
		return nil, err
	}
	req := transform.Projective{Src: ProjectiveSource(width, height)}
	copy(req.Dst[:], pts)
	return req, nil
}
