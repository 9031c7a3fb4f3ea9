// Package normalize turns host curves into the canonical keyed form used for export.
package normalize

import (
	"fmt"
	"math"

	"github.com/ivlev/animio/internal/curve"
	"github.com/ivlev/animio/internal/source"
)

// Curve converts a host curve into a keyed curve.
//
// Keyed curves are copied as they are. Each sample of a sampled curve becomes
// an independent LINEAR keyframe at its own frame; no curve fitting is
// attempted. An empty host curve gives a curve without keyframes.
func Curve(src source.Curve) (*curve.Curve, error) {
	kfs := src.Keyframes()
	if src.Sampled() {
		var err error
		if kfs, err = samples(src); err != nil {
			return nil, err
		}
	}
	out, err := curve.NewCurve(src.Key(), kfs...)
	if err != nil {
		return nil, err
	}
	out.Group = src.Group()
	return out, nil
}

// samples synthesizes one keyframe per sample, at start, start+1, ... end.
// Vector handles point a third of the way to the neighbouring samples,
// matching a straight line.
func samples(src source.Curve) ([]curve.Keyframe, error) {
	start, end, ok := src.Range()
	if !ok {
		return nil, nil
	}
	if err := source.CheckRange(start, end); err != nil {
		return nil, err
	}
	n := int(math.Round(end-start)) + 1

	values := make([]float64, n)
	for i := range values {
		values[i] = src.Evaluate(start + float64(i))
	}

	kfs := make([]curve.Keyframe, n)
	for i, v := range values {
		kf := curve.Keyframe{
			Time:          start + float64(i),
			Value:         v,
			Interpolation: curve.InterpolationLinear,
			Easing:        curve.EasingAuto,
			Type:          curve.TypeKeyframe,
			Back:          curve.DefaultBack,
			HandleLeft:    curve.Handle{Time: -1.0 / 3, Type: curve.HandleVector},
			HandleRight:   curve.Handle{Time: 1.0 / 3, Type: curve.HandleVector},
		}
		if i > 0 {
			kf.HandleLeft.Value = (values[i-1] - v) / 3
		}
		if i < n-1 {
			kf.HandleRight.Value = (values[i+1] - v) / 3
		}
		kfs[i] = kf
	}
	return kfs, nil
}

// Action normalizes every curve of a host action.
// Two host curves animating the same property are rejected.
func Action(src source.Action) (*curve.Action, error) {
	out := curve.NewAction(src.Name)
	for _, sc := range src.Curves {
		c, err := Curve(sc)
		if err != nil {
			return nil, fmt.Errorf("normalize %s: %w", sc.Key(), err)
		}
		if err := out.Add(c); err != nil {
			return nil, fmt.Errorf("normalize: %w", err)
		}
	}
	return out, nil
}
