package source

import (
	"github.com/ivlev/animio/internal/curve"
)

// Curve is a host animation curve as the host stores it, either as explicit
// keyframes or as one baked value per frame.
type Curve interface {
	Key() curve.Key
	Group() string
	Sampled() bool
	// Keyframes returns the explicit keyframes, nil for sampled curves.
	Keyframes() []curve.Keyframe
	// Range returns the first and last frame the curve covers.
	Range() (start, end float64, ok bool)
	Evaluate(frame float64) float64
}

// Action is the host action handed to the exporter.
type Action struct {
	Name   string
	Curves []Curve
}

// KeyedCurve is a host curve with explicit keyframes.
type KeyedCurve struct {
	curve *curve.Curve
}

func NewKeyedCurve(c *curve.Curve) *KeyedCurve {
	return &KeyedCurve{curve: c}
}

func (k *KeyedCurve) Key() curve.Key                  { return k.curve.Key() }
func (k *KeyedCurve) Group() string                   { return k.curve.Group }
func (k *KeyedCurve) Sampled() bool                   { return false }
func (k *KeyedCurve) Keyframes() []curve.Keyframe     { return k.curve.Keyframes() }
func (k *KeyedCurve) Range() (float64, float64, bool) { return k.curve.Range() }
func (k *KeyedCurve) Evaluate(frame float64) float64  { return k.curve.Evaluate(frame) }

// FromAction wraps every curve of a model action as a keyed host curve.
func FromAction(a *curve.Action) Action {
	out := Action{Name: a.Name}
	for _, c := range a.Curves() {
		out.Curves = append(out.Curves, NewKeyedCurve(c))
	}
	return out
}
