package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/animio/internal/curve"
)

const testScene = `
version: "1.0"
action: CubeAction
curves:
  - data_path: location
    array_index: 0
    group: Object Transforms
    keyframes:
      - time: 1
        value: 0
      - time: 10
        value: 2
        interpolation: LINEAR
        handle_left: {time: -3, value: 0, type: VECTOR}
      - time: 20
        value: 5
        interpolation: ELASTIC
        amplitude: 0.8
        back: 2.5
        period: 4
  - data_path: rotation_euler
    array_index: 2
    samples:
      start: 1
      values: [0, 0.5, 1.5]
`

func TestParseScene(t *testing.T) {
	action, err := ParseScene([]byte(testScene))
	require.NoError(t, err)
	assert.Equal(t, "CubeAction", action.Name)
	require.Len(t, action.Curves, 2)

	keyed := action.Curves[0]
	assert.False(t, keyed.Sampled())
	assert.Equal(t, curve.Key{DataPath: "location", ArrayIndex: 0}, keyed.Key())
	assert.Equal(t, "Object Transforms", keyed.Group())
	kfs := keyed.Keyframes()
	require.Len(t, kfs, 3)
	assert.Equal(t, curve.InterpolationBezier, kfs[0].Interpolation, "defaults apply")
	assert.Equal(t, curve.DefaultBack, kfs[0].Back)
	assert.Zero(t, kfs[0].Amplitude)
	assert.Zero(t, kfs[0].Period)
	assert.Equal(t, curve.InterpolationElastic, kfs[2].Interpolation)
	assert.Equal(t, 0.8, kfs[2].Amplitude)
	assert.Equal(t, 2.5, kfs[2].Back)
	assert.Equal(t, 4.0, kfs[2].Period)
	assert.Equal(t, curve.InterpolationLinear, kfs[1].Interpolation)
	assert.Equal(t, curve.Handle{Time: -3, Value: 0, Type: curve.HandleVector}, kfs[1].HandleLeft)

	sampled := action.Curves[1]
	assert.True(t, sampled.Sampled())
	assert.Nil(t, sampled.Keyframes())
	start, end, ok := sampled.Range()
	require.True(t, ok)
	assert.Equal(t, 1.0, start)
	assert.Equal(t, 3.0, end)
	assert.Equal(t, 0.5, sampled.Evaluate(2))
	assert.Equal(t, 1.0, sampled.Evaluate(2.5))
	assert.Equal(t, 0.0, sampled.Evaluate(-4))
	assert.Equal(t, 1.5, sampled.Evaluate(99))
}

func TestParseSceneErrors(t *testing.T) {
	tests := map[string]string{
		"missing data path": "curves:\n  - array_index: 0\n",
		"both forms":        "curves:\n  - data_path: a\n    keyframes: [{time: 1, value: 1}]\n    samples: {start: 0, values: [1]}\n",
		"bad interpolation": "curves:\n  - data_path: a\n    keyframes: [{time: 1, value: 1, interpolation: SPLINE}]\n",
		"not yaml":          "curves: [",
		"samples too far":   "curves:\n  - data_path: a\n    samples: {start: 1e300, values: [1, 2]}\n",
		"samples past end":  "curves:\n  - data_path: a\n    samples: {start: 1048574, values: [1, 2]}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScene([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestEmptySampledCurve(t *testing.T) {
	s := NewSampledCurve(curve.Key{DataPath: "scale"}, "", 5, nil)
	_, _, ok := s.Range()
	assert.False(t, ok)
	assert.Equal(t, 0.0, s.Evaluate(5))
}

func TestWriteSceneBakes(t *testing.T) {
	c, err := curve.NewCurve(curve.Key{DataPath: "location", ArrayIndex: 1})
	require.NoError(t, err)
	for _, kf := range []curve.Keyframe{curve.NewKeyframe(0, 0), curve.NewKeyframe(4, 8)} {
		kf.Interpolation = curve.InterpolationLinear
		_, _ = c.Insert(kf)
	}
	action := curve.NewAction("Baked")
	require.NoError(t, action.Add(c))

	path := filepath.Join(t.TempDir(), "baked.yaml")
	require.NoError(t, WriteScene(action, path))

	_, err = os.Stat(path)
	require.NoError(t, err)

	read, err := ReadScene(path)
	require.NoError(t, err)
	assert.Equal(t, "Baked", read.Name)
	require.Len(t, read.Curves, 1)
	require.True(t, read.Curves[0].Sampled())
	sampled := read.Curves[0].(*SampledCurve)
	assert.Equal(t, 0.0, sampled.Start)
	assert.Equal(t, []float64{0, 2, 4, 6, 8}, sampled.Values)
}

func TestBake(t *testing.T) {
	c, err := curve.NewCurve(curve.Key{DataPath: "location"}, curve.NewKeyframe(0.5, 1), curve.NewKeyframe(2.5, 1))
	require.NoError(t, err)

	baked, err := Bake(c)
	require.NoError(t, err)
	assert.Equal(t, 0.0, baked.Start)
	assert.Equal(t, []float64{1, 1, 1, 1}, baked.Values)

	empty, err := curve.NewCurve(curve.Key{DataPath: "scale"})
	require.NoError(t, err)
	baked, err = Bake(empty)
	require.NoError(t, err)
	assert.Empty(t, baked.Values)
}

func TestBakeRejectsFarFrames(t *testing.T) {
	for _, times := range [][2]float64{{1e16, 1e16 + 4}, {-1e300, 0}, {0, MaxFrame + 1}} {
		c, err := curve.NewCurve(curve.Key{DataPath: "location"}, curve.NewKeyframe(times[0], 0), curve.NewKeyframe(times[1], 1))
		require.NoError(t, err)

		_, err = Bake(c)
		assert.Error(t, err, "frames %v", times)

		action := curve.NewAction("Far")
		require.NoError(t, action.Add(c))
		assert.Error(t, WriteScene(action, filepath.Join(t.TempDir(), "far.yaml")))
	}
}
