package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/animio/internal/curve"
	"github.com/ivlev/animio/internal/document"
	"github.com/ivlev/animio/internal/source"
)

var rotZ = curve.Key{DataPath: "rotation_euler", ArrayIndex: 2}

func TestKeyedCurveIsCopied(t *testing.T) {
	kf := curve.NewKeyframe(3, 1.5)
	kf.HandleLeft = curve.Handle{Time: -0.5, Value: 0.25, Type: curve.HandleFree}
	kf.Easing = curve.EasingOut
	c, err := curve.NewCurve(rotZ, curve.NewKeyframe(1, 0), kf)
	require.NoError(t, err)
	c.Group = "Object Transforms"

	got, err := Curve(source.NewKeyedCurve(c))
	require.NoError(t, err)
	assert.True(t, got.Equal(c))
	if diff := cmp.Diff(c.Keyframes(), got.Keyframes()); diff != "" {
		t.Errorf("keyframes differ (-want +got):\n%s", diff)
	}
}

func TestSampledCurveBecomesKeyframes(t *testing.T) {
	values := []float64{0, 0.5, 1.5, 1.5}
	src := source.NewSampledCurve(rotZ, "Object Transforms", 10, values)

	got, err := Curve(src)
	require.NoError(t, err)
	assert.Equal(t, "Object Transforms", got.Group)
	assert.Equal(t, []float64{10, 11, 12, 13}, got.Times())

	for i, kf := range got.Keyframes() {
		assert.Equal(t, values[i], kf.Value)
		assert.Equal(t, curve.InterpolationLinear, kf.Interpolation)
		assert.Equal(t, curve.HandleVector, kf.HandleLeft.Type)
		assert.Equal(t, curve.HandleVector, kf.HandleRight.Type)
	}

	kf, _ := got.At(11)
	assert.InDelta(t, -0.5/3, kf.HandleLeft.Value, 1e-12)
	assert.InDelta(t, 1.0/3, kf.HandleRight.Value, 1e-12)

	// Evaluating the keyed result reproduces the samples.
	for i, v := range values {
		assert.Equal(t, v, got.Evaluate(10+float64(i)))
	}
}

func TestFractionalSampleStart(t *testing.T) {
	values := []float64{1, 3, -2}
	src := source.NewSampledCurve(rotZ, "", 0.5, values)

	got, err := Curve(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, got.Times())

	// The samples survive a trip through the document.
	a := curve.NewAction("Spin")
	require.NoError(t, a.Add(got))
	data, err := document.Encode(a, document.FormatJSON)
	require.NoError(t, err)
	decoded, err := document.Decode(data, document.FormatJSON)
	require.NoError(t, err)
	c, ok := decoded.Curve(rotZ)
	require.True(t, ok)
	for i, want := range values {
		frame := 0.5 + float64(i)
		assert.Equal(t, want, c.Evaluate(frame), "frame %g", frame)
		assert.Equal(t, src.Evaluate(frame), c.Evaluate(frame), "frame %g", frame)
	}
}

func TestSampledCurveOutOfRange(t *testing.T) {
	for _, start := range []float64{1e300, -1e16, source.MaxFrame} {
		src := source.NewSampledCurve(rotZ, "", start, []float64{7, 8})
		_, err := Curve(src)
		assert.Error(t, err, "start %g", start)
	}

	// The last frame itself is allowed.
	got, err := Curve(source.NewSampledCurve(rotZ, "", source.MaxFrame-1, []float64{7, 8}))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}

func TestEmptyCurves(t *testing.T) {
	empty, err := curve.NewCurve(rotZ)
	require.NoError(t, err)

	for _, src := range []source.Curve{
		source.NewKeyedCurve(empty),
		source.NewSampledCurve(rotZ, "", 0, nil),
	} {
		got, err := Curve(src)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
		assert.Equal(t, rotZ, got.Key())
	}
}

func TestActionRejectsDuplicateKeys(t *testing.T) {
	c, _ := curve.NewCurve(rotZ, curve.NewKeyframe(1, 1))
	src := source.Action{
		Name: "Spin",
		Curves: []source.Curve{
			source.NewKeyedCurve(c),
			source.NewSampledCurve(rotZ, "", 0, []float64{1}),
		},
	}
	_, err := Action(src)
	assert.Error(t, err)

	src.Curves = src.Curves[:1]
	a, err := Action(src)
	require.NoError(t, err)
	assert.Equal(t, "Spin", a.Name)
	assert.Equal(t, []curve.Key{rotZ}, a.Keys())
}
