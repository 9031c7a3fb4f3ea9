package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/animio/internal/curve"
)

// Scene is a YAML dump of a host action. It stands in for the live host
// animation API on the command line.
type Scene struct {
	Version string       `yaml:"version"`
	Action  string       `yaml:"action"`
	Curves  []SceneCurve `yaml:"curves"`
}

// SceneCurve holds either keyframes or samples.
type SceneCurve struct {
	DataPath   string          `yaml:"data_path"`
	ArrayIndex int             `yaml:"array_index"`
	Group      string          `yaml:"group,omitempty"`
	Keyframes  []SceneKeyframe `yaml:"keyframes,omitempty"`
	Samples    *SceneSamples   `yaml:"samples,omitempty"`
}

type SceneSamples struct {
	Start  float64   `yaml:"start"`
	Values []float64 `yaml:"values"`
}

// SceneKeyframe leaves optional fields empty to take the defaults of curve.NewKeyframe.
type SceneKeyframe struct {
	Time          float64      `yaml:"time"`
	Value         float64      `yaml:"value"`
	Interpolation string       `yaml:"interpolation,omitempty"`
	Easing        string       `yaml:"easing,omitempty"`
	Type          string       `yaml:"type,omitempty"`
	Amplitude     *float64     `yaml:"amplitude,omitempty"`
	Back          *float64     `yaml:"back,omitempty"`
	Period        *float64     `yaml:"period,omitempty"`
	HandleLeft    *SceneHandle `yaml:"handle_left,omitempty"`
	HandleRight   *SceneHandle `yaml:"handle_right,omitempty"`
}

type SceneHandle struct {
	Time  float64 `yaml:"time"`
	Value float64 `yaml:"value"`
	Type  string  `yaml:"type"`
}

// ReadScene reads a scene from a YAML file
func ReadScene(path string) (Action, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Action{}, err
	}
	return ParseScene(data)
}

// ParseScene decodes a YAML scene into a host action.
func ParseScene(data []byte) (Action, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return Action{}, fmt.Errorf("scene: %w", err)
	}

	action := Action{Name: scene.Action}
	for i, sc := range scene.Curves {
		key := curve.Key{DataPath: sc.DataPath, ArrayIndex: sc.ArrayIndex}
		if sc.DataPath == "" {
			return Action{}, fmt.Errorf("scene: curve %d: missing data_path", i)
		}
		if sc.Samples != nil {
			if len(sc.Keyframes) > 0 {
				return Action{}, fmt.Errorf("scene: curve %s has both keyframes and samples", key)
			}
			if n := len(sc.Samples.Values); n > 0 {
				if err := CheckRange(sc.Samples.Start, sc.Samples.Start+float64(n-1)); err != nil {
					return Action{}, fmt.Errorf("scene: curve %s: %w", key, err)
				}
			}
			action.Curves = append(action.Curves, NewSampledCurve(key, sc.Group, sc.Samples.Start, sc.Samples.Values))
			continue
		}

		kfs := make([]curve.Keyframe, 0, len(sc.Keyframes))
		for _, skf := range sc.Keyframes {
			kf, err := skf.keyframe()
			if err != nil {
				return Action{}, fmt.Errorf("scene: curve %s: %w", key, err)
			}
			kfs = append(kfs, kf)
		}
		c, err := curve.NewCurve(key, kfs...)
		if err != nil {
			return Action{}, fmt.Errorf("scene: %w", err)
		}
		c.Group = sc.Group
		action.Curves = append(action.Curves, NewKeyedCurve(c))
	}
	return action, nil
}

func (s SceneKeyframe) keyframe() (curve.Keyframe, error) {
	kf := curve.NewKeyframe(s.Time, s.Value)
	if s.Interpolation != "" {
		kf.Interpolation = curve.Interpolation(s.Interpolation)
	}
	if s.Easing != "" {
		kf.Easing = curve.Easing(s.Easing)
	}
	if s.Type != "" {
		kf.Type = curve.KeyframeType(s.Type)
	}
	if s.Amplitude != nil {
		kf.Amplitude = *s.Amplitude
	}
	if s.Back != nil {
		kf.Back = *s.Back
	}
	if s.Period != nil {
		kf.Period = *s.Period
	}
	if s.HandleLeft != nil {
		kf.HandleLeft = curve.Handle{Time: s.HandleLeft.Time, Value: s.HandleLeft.Value, Type: curve.HandleType(s.HandleLeft.Type)}
	}
	if s.HandleRight != nil {
		kf.HandleRight = curve.Handle{Time: s.HandleRight.Time, Value: s.HandleRight.Value, Type: curve.HandleType(s.HandleRight.Type)}
	}

	switch {
	case !kf.Interpolation.Valid():
		return kf, fmt.Errorf("frame %g: unknown interpolation %q", s.Time, s.Interpolation)
	case !kf.Easing.Valid():
		return kf, fmt.Errorf("frame %g: unknown easing %q", s.Time, s.Easing)
	case !kf.Type.Valid():
		return kf, fmt.Errorf("frame %g: unknown keyframe type %q", s.Time, s.Type)
	case !kf.HandleLeft.Type.Valid() || !kf.HandleRight.Type.Valid():
		return kf, fmt.Errorf("frame %g: unknown handle type", s.Time)
	}
	return kf, nil
}

// WriteScene writes an action as a scene of baked curves
func WriteScene(action *curve.Action, path string) error {
	scene := Scene{Version: "1.0", Action: action.Name}
	for _, c := range action.Curves() {
		baked, err := Bake(c)
		if err != nil {
			return err
		}
		scene.Curves = append(scene.Curves, SceneCurve{
			DataPath:   c.DataPath(),
			ArrayIndex: c.ArrayIndex(),
			Group:      c.Group,
			Samples:    &SceneSamples{Start: baked.Start, Values: baked.Values},
		})
	}

	data, err := yaml.Marshal(&scene)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
