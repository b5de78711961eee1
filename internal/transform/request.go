package transform

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"geometric-transformations/internal/core"
	"geometric-transformations/internal/geometry"
)

// Kind names one of the five transformation kinds.
type Kind string

const (
	KindScale      Kind = "scale"
	KindRotate     Kind = "rotate"
	KindAffine     Kind = "affine"
	KindTranslate  Kind = "translate"
	KindProjective Kind = "projective"
)

var kindLabels = map[Kind]string{
	KindScale:      "Scaling",
	KindRotate:     "Rotation",
	KindAffine:     "Affine Transformation",
	KindTranslate:  "Translation",
	KindProjective: "Projective",
}

// Kinds lists every kind in display order.
func Kinds() []Kind {
	return []Kind{KindScale, KindRotate, KindAffine, KindTranslate, KindProjective}
}

// Label is the human readable name, also used for output file names.
func (k Kind) Label() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

// ParseKind accepts a kind name or its label, case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	k, ok := lo.Find(Kinds(), func(k Kind) bool {
		return strings.EqualFold(string(k), s) || strings.EqualFold(k.Label(), s)
	})
	if !ok {
		return "", fmt.Errorf("%w: unknown transformation %q", ErrInvalidParameter, s)
	}
	return k, nil
}

// Engine computes the five transformations for one source image.
// Implementations must leave the source untouched and return a new image.
type Engine interface {
	Scale(fx, fy float64) (*core.Image, error)
	Rotate(degrees float64) (*core.Image, error)
	Affine(src, dst [3]geometry.Point) (*core.Image, error)
	Translate(dx, dy float64) (*core.Image, error)
	Projective(src, dst [4]geometry.Point) (*core.Image, error)
}

// Factory builds an Engine for a source image.
type Factory func(img *core.Image, opts ...Option) (Engine, error)

// Request is one transformation with its parameters. It is implemented
// only by Scale, Rotate, Affine, Translate and Projective.
type Request interface {
	Kind() Kind
	applyTo(e Engine) (*core.Image, error)
}

// Apply runs r on e.
func Apply(e Engine, r Request) (*core.Image, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no transformation requested", ErrInvalidParameter)
	}
	return r.applyTo(e)
}

// Scale resizes by FX horizontally and FY vertically.
type Scale struct {
	FX, FY float64
}

func (Scale) Kind() Kind { return KindScale }

func (r Scale) applyTo(e Engine) (*core.Image, error) { return e.Scale(r.FX, r.FY) }

// Rotate turns the image about its centre.
type Rotate struct {
	Degrees float64
}

func (Rotate) Kind() Kind { return KindRotate }

func (r Rotate) applyTo(e Engine) (*core.Image, error) { return e.Rotate(r.Degrees) }

// Affine moves three source points onto three destination points.
type Affine struct {
	Src, Dst [3]geometry.Point
}

func (Affine) Kind() Kind { return KindAffine }

func (r Affine) applyTo(e Engine) (*core.Image, error) { return e.Affine(r.Src, r.Dst) }

// Translate shifts the image by (DX, DY) pixels.
type Translate struct {
	DX, DY float64
}

func (Translate) Kind() Kind { return KindTranslate }

func (r Translate) applyTo(e Engine) (*core.Image, error) { return e.Translate(r.DX, r.DY) }

// Projective moves four source points onto four destination points.
type Projective struct {
	Src, Dst [4]geometry.Point
}

func (Projective) Kind() Kind { return KindProjective }

func (r Projective) applyTo(e Engine) (*core.Image, error) { return e.Projective(r.Src, r.Dst) }
