package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyed(interp Interpolation, easing Easing, times, values []float64) *Curve {
	c, _ := NewCurve(locX)
	for i := range times {
		kf := NewKeyframe(times[i], values[i])
		kf.Interpolation = interp
		kf.Easing = easing
		_, _ = c.Insert(kf)
	}
	return c
}

func TestEvaluateLinearAndConstant(t *testing.T) {
	lin := keyed(InterpolationLinear, EasingAuto, []float64{0, 2, 4}, []float64{1, 1.5, 2})
	tests := []struct {
		time     float64
		expected float64
	}{
		{-1, 1},   // Before first keyframe
		{0, 1},    // First keyframe
		{1, 1.25}, // Midpoint
		{2, 1.5},
		{3, 1.75},
		{4, 2},
		{5, 2}, // After last keyframe
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, lin.Evaluate(tt.time), 1e-9, "t=%.1f", tt.time)
	}

	step := keyed(InterpolationConstant, EasingAuto, []float64{0, 10}, []float64{3, 7})
	assert.Equal(t, 3.0, step.Evaluate(9.99))
	assert.Equal(t, 7.0, step.Evaluate(10))
}

func TestEvaluateEmpty(t *testing.T) {
	c, err := NewCurve(locX)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Evaluate(3))
}

func TestEvaluateBezierHitsEndpoints(t *testing.T) {
	c := keyed(InterpolationBezier, EasingAuto, []float64{0, 10}, []float64{0, 10})
	assert.InDelta(t, 0, c.Evaluate(0), 1e-9)
	assert.InDelta(t, 10, c.Evaluate(10), 1e-9)

	// Flat handles give an S-curve symmetric around the midpoint.
	assert.InDelta(t, 5, c.Evaluate(5), 1e-6)
	assert.Less(t, c.Evaluate(1), 1.0)
	assert.Greater(t, c.Evaluate(9), 9.0)
}

func TestEvaluateEasing(t *testing.T) {
	for _, interp := range []Interpolation{
		InterpolationSine, InterpolationQuad, InterpolationCubic, InterpolationQuart,
		InterpolationQuint, InterpolationExpo, InterpolationCirc,
	} {
		t.Run(string(interp), func(t *testing.T) {
			in := keyed(interp, EasingIn, []float64{0, 10}, []float64{0, 1})
			out := keyed(interp, EasingOut, []float64{0, 10}, []float64{0, 1})
			inOut := keyed(interp, EasingInOut, []float64{0, 10}, []float64{0, 1})
			auto := keyed(interp, EasingAuto, []float64{0, 10}, []float64{0, 1})

			assert.Less(t, in.Evaluate(3), 0.3)
			assert.Greater(t, out.Evaluate(3), 0.3)
			assert.InDelta(t, 0.5, inOut.Evaluate(5), 1e-9)
			assert.InDelta(t, in.Evaluate(3), auto.Evaluate(3), 1e-12, "AUTO eases in")
		})
	}
}

func TestEvaluateDynamicEffects(t *testing.T) {
	back := keyed(InterpolationBack, EasingAuto, []float64{0, 10}, []float64{0, 1})
	assert.Greater(t, back.Evaluate(8), 1.0, "BACK overshoots at the end by default")

	bounce := keyed(InterpolationBounce, EasingAuto, []float64{0, 10}, []float64{0, 1})
	assert.InDelta(t, 1, bounce.Evaluate(10), 1e-9)
	assert.InDelta(t, bounceOut(0.5), bounce.Evaluate(5), 1e-9)

	elastic := keyed(InterpolationElastic, EasingAuto, []float64{0, 10}, []float64{0, 1})
	assert.InDelta(t, 0, elastic.Evaluate(0), 1e-9)
	assert.InDelta(t, 1, elastic.Evaluate(10), 1e-9)
}
