package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/animio/internal/curve"
	"github.com/ivlev/animio/internal/document"
	"github.com/ivlev/animio/internal/source"
)

const scene = `
action: CubeAction
curves:
  - data_path: location
    array_index: 0
    keyframes:
      - {time: 1, value: 0}
      - {time: 5, value: 4, type: EXTREME}
  - data_path: location
    array_index: 2
    samples: {start: 1, values: [0, 1, 2]}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand(&out, &out)
	root.cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "--log-level", "error"}, args...))
	err := root.cmd.Execute()
	return out.String(), err
}

func TestExportImportBake(t *testing.T) {
	dir := t.TempDir()
	in, out := filepath.Join(dir, "scenes"), filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(in, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "cube.yaml"), []byte(scene), 0644))

	stdout, err := run(t, "export", "--input-dir", in, "--output-dir", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 curves")

	docPath := filepath.Join(out, "cube.json")
	exported, err := document.ReadFile(docPath)
	require.NoError(t, err)
	assert.Equal(t, "CubeAction", exported.Name)

	target := filepath.Join(dir, "objects", "cube.json")
	_, err = run(t, "import", docPath, target, "--policy", "merge")
	require.Error(t, err, "merge needs an existing action")
	_, err = os.Stat(target)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, "import", docPath, target)
	require.NoError(t, err)

	// Change the document and merge it back, protecting EXTREME keyframes.
	x, _ := exported.Curve(curve.Key{DataPath: "location"})
	_, _ = x.Insert(curve.NewKeyframe(5, 100))
	_, _ = x.Insert(curve.NewKeyframe(9, 9))
	require.NoError(t, document.WriteFile(exported, docPath))

	_, err = run(t, "import", docPath, target, "-p", "merge-keyframes", "--protect", "extreme", "--curves", "location[0]")
	require.NoError(t, err)

	merged, err := document.ReadFile(target)
	require.NoError(t, err)
	mx, _ := merged.Curve(curve.Key{DataPath: "location"})
	assert.Equal(t, []float64{1, 5, 9}, mx.Times())
	kf, _ := mx.At(5)
	assert.Equal(t, 4.0, kf.Value, "protected keyframe kept")

	baked := filepath.Join(dir, "baked.yaml")
	_, err = run(t, "bake", target, baked)
	require.NoError(t, err)
	action, err := source.ReadScene(baked)
	require.NoError(t, err)
	assert.Len(t, action.Curves, 2)
}

func TestExportWithoutScenes(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "export", "--input-dir", filepath.Join(dir, "empty"), "--output-dir", dir)
	assert.ErrorContains(t, err, "no scene files")
}

func TestInvalidConfig(t *testing.T) {
	_, err := run(t, "export", "--format", "xml")
	assert.ErrorContains(t, err, "invalid config")
}

func TestProtectTypes(t *testing.T) {
	filter, err := protectTypes(nil)
	require.NoError(t, err)
	assert.Nil(t, filter)

	_, err = protectTypes([]string{"SPECIAL"})
	assert.Error(t, err)

	filter, err = protectTypes([]string{"breakdown"})
	require.NoError(t, err)
	kf := curve.NewKeyframe(0, 0)
	assert.False(t, filter(curve.Key{}, kf))
	kf.Type = curve.TypeBreakdown
	assert.True(t, filter(curve.Key{}, kf))
}
