// Package document maps actions to and from the JSON (or YAML) exchange document.
package document

import (
	"fmt"
	"math"
	"os"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/animio/internal/curve"
)

// Version is written into every exported document. Documents with the same
// major version are accepted on import.
const Version = "1.0"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the exchange format of one action.
// Required fields are pointers so that a missing field can be told apart from a zero.
type Document struct {
	Version    string        `json:"version,omitempty" yaml:"version,omitempty"`
	ActionName *string       `json:"action_name" yaml:"action_name" validate:"required"`
	Curves     []CurveRecord `json:"curves" yaml:"curves" validate:"required,dive"`
}

type CurveRecord struct {
	DataPath   *string          `json:"data_path" yaml:"data_path" validate:"required"`
	ArrayIndex *int             `json:"array_index" yaml:"array_index" validate:"required,min=0"`
	Group      string           `json:"group,omitempty" yaml:"group,omitempty"`
	Keyframes  []KeyframeRecord `json:"keyframes" yaml:"keyframes" validate:"required,dive"`
}

type KeyframeRecord struct {
	Time          *float64      `json:"time" yaml:"time" validate:"required"`
	Value         *float64      `json:"value" yaml:"value" validate:"required"`
	Interpolation string        `json:"interpolation" yaml:"interpolation" validate:"required,interpolation"`
	Easing        string        `json:"easing" yaml:"easing" validate:"required,easing"`
	Type          string        `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,keyframe_type"`
	Amplitude     float64       `json:"amplitude" yaml:"amplitude"`
	Back          float64       `json:"back" yaml:"back"`
	Period        float64       `json:"period" yaml:"period"`
	HandleLeft    *HandleRecord `json:"handle_left" yaml:"handle_left" validate:"required"`
	HandleRight   *HandleRecord `json:"handle_right" yaml:"handle_right" validate:"required"`
}

type HandleRecord struct {
	Time  *float64 `json:"time" yaml:"time" validate:"required"`
	Value *float64 `json:"value" yaml:"value" validate:"required"`
	Type  string   `json:"type" yaml:"type" validate:"required,handle_type"`
}

func ptr[T any](v T) *T {
	return &v
}

// FromAction builds the document of an action.
func FromAction(a *curve.Action) (*Document, error) {
	doc := &Document{
		Version:    Version,
		ActionName: ptr(a.Name),
		Curves:     make([]CurveRecord, 0, a.Len()),
	}
	for _, c := range a.Curves() {
		rec := CurveRecord{
			DataPath:   ptr(c.DataPath()),
			ArrayIndex: ptr(c.ArrayIndex()),
			Group:      c.Group,
			Keyframes:  make([]KeyframeRecord, 0, c.Len()),
		}
		for _, kf := range c.Keyframes() {
			if err := checkKeyframe(kf); err != nil {
				return nil, fmt.Errorf("curve %s: %w", c.Key(), err)
			}
			rec.Keyframes = append(rec.Keyframes, KeyframeRecord{
				Time:          ptr(kf.Time),
				Value:         ptr(kf.Value),
				Interpolation: string(kf.Interpolation),
				Easing:        string(kf.Easing),
				Type:          string(kf.Type),
				Amplitude:     kf.Amplitude,
				Back:          kf.Back,
				Period:        kf.Period,
				HandleLeft:    handleRecord(kf.HandleLeft),
				HandleRight:   handleRecord(kf.HandleRight),
			})
		}
		doc.Curves = append(doc.Curves, rec)
	}
	return doc, nil
}

func handleRecord(h curve.Handle) *HandleRecord {
	return &HandleRecord{Time: ptr(h.Time), Value: ptr(h.Value), Type: string(h.Type)}
}

// checkKeyframe rejects keyframes the decoder would refuse.
func checkKeyframe(kf curve.Keyframe) error {
	switch {
	case !kf.Interpolation.Valid():
		return fmt.Errorf("keyframe at frame %g: unknown interpolation %q", kf.Time, kf.Interpolation)
	case !kf.Easing.Valid():
		return fmt.Errorf("keyframe at frame %g: unknown easing %q", kf.Time, kf.Easing)
	case kf.Type != "" && !kf.Type.Valid():
		return fmt.Errorf("keyframe at frame %g: unknown keyframe type %q", kf.Time, kf.Type)
	case !kf.HandleLeft.Type.Valid() || !kf.HandleRight.Type.Valid():
		return fmt.Errorf("keyframe at frame %g: unknown handle type", kf.Time)
	}

	values := map[string]float64{
		"value":              kf.Value,
		"amplitude":          kf.Amplitude,
		"back":               kf.Back,
		"period":             kf.Period,
		"handle_left.time":   kf.HandleLeft.Time,
		"handle_left.value":  kf.HandleLeft.Value,
		"handle_right.time":  kf.HandleRight.Time,
		"handle_right.value": kf.HandleRight.Value,
	}
	for name, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("keyframe at frame %g: %s is not a finite number", kf.Time, name)
		}
	}
	return nil
}

// Encode serializes an action. JSON output is indented with two spaces.
func Encode(a *curve.Action, format Format) ([]byte, error) {
	doc, err := FromAction(a)
	if err != nil {
		return nil, fmt.Errorf("encode action %q: %w", a.Name, err)
	}
	if format == FormatYAML {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// WriteFile encodes an action in the format matching the file extension.
func WriteFile(a *curve.Action, path string) error {
	data, err := Encode(a, FormatFromPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile decodes the document at path, picking the format from the extension.
func ReadFile(path string) (*curve.Action, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, FormatFromPath(path))
}
