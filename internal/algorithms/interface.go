// Transformation registry used to build UI controls and requests
package algorithms

import (
	"fmt"

	"github.com/samber/lo"

	"geometric-transformations/internal/transform"
)

// Algorithm describes one transformation kind: its controls, their
// defaults for a given image size, and how to turn values into a request.
type Algorithm interface {
	Kind() transform.Kind
	GetName() string
	GetDescription() string
	GetParameterInfo(width, height int) []ParameterInfo
	GetDefaultParams(width, height int) map[string]interface{}
	Validate(params map[string]interface{}) error
	Build(width, height int, params map[string]interface{}) (transform.Request, error)
}

// ParameterInfo describes a parameter for UI generation
type ParameterInfo struct {
	Name        string      `json:"name"`
	Label       string      `json:"label"`
	Type        string      `json:"type"` // "float" or "int"
	Min         interface{} `json:"min,omitempty"`
	Max         interface{} `json:"max,omitempty"`
	Step        float64     `json:"step,omitempty"`
	Default     interface{} `json:"default"`
	Description string      `json:"description"`
}

// Bounded reports whether the parameter has a slider range.
func (p ParameterInfo) Bounded() bool {
	return p.Min != nil && p.Max != nil
}

var algorithms = make(map[string]Algorithm)

func Register(algorithm Algorithm) {
	algorithms[algorithm.GetName()] = algorithm
}

// Get looks an algorithm up by display name or kind name.
func Get(name string) (Algorithm, bool) {
	if algorithm, exists := algorithms[name]; exists {
		return algorithm, true
	}
	kind, err := transform.ParseKind(name)
	if err != nil {
		return nil, false
	}
	return GetByKind(kind)
}

func GetByKind(kind transform.Kind) (Algorithm, bool) {
	return lo.Find(lo.Values(algorithms), func(a Algorithm) bool {
		return a.Kind() == kind
	})
}

// Names lists the registered display names in menu order.
func Names() []string {
	return lo.FilterMap(transform.Kinds(), func(k transform.Kind, _ int) (string, bool) {
		a, ok := GetByKind(k)
		if !ok {
			return "", false
		}
		return a.GetName(), true
	})
}

func IsValidAlgorithm(name string) bool {
	_, exists := Get(name)
	return exists
}

func ValidateParameters(name string, params map[string]interface{}) error {
	algorithm, exists := Get(name)
	if !exists {
		return fmt.Errorf("%w: algorithm not found: %s", transform.ErrInvalidParameter, name)
	}

	return algorithm.Validate(params)
}

// Build validates params and returns the request for a width x height image.
func Build(name string, width, height int, params map[string]interface{}) (transform.Request, error) {
	algorithm, exists := Get(name)
	if !exists {
		return nil, fmt.Errorf("%w: algorithm not found: %s", transform.ErrInvalidParameter, name)
	}

	if err := algorithm.Validate(params); err != nil {
		return nil, err
	}
	return algorithm.Build(width, height, params)
}

func init() {
	Register(NewScaling())
	Register(NewRotation())
	Register(NewAffineTransformation())
	Register(NewTranslation())
	Register(NewProjective())
}
