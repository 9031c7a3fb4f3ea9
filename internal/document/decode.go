package document

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/animio/internal/curve"
)

// Shapes of documents the decoder recognises. Field types are checked later,
// against the typed records, so that a mistyped field is reported as malformed.
var (
	currentShape = jsonschema.MustCompileString("file:///current.json", `{
		"type": "object",
		"anyOf": [
			{"required": ["action_name"]},
			{"required": ["curves"]}
		]
	}`)
	// The flat layout of the first exporter, one list of keyframes that each
	// carry their curve.
	legacyShape = jsonschema.MustCompileString("file:///legacy.json", `{
		"type": "object",
		"required": ["keyframes"]
	}`)
)

// Decode parses a document into an action.
//
// Errors are *MalformedDocumentError for invalid syntax and missing or
// mistyped fields, and *SchemaVersionError when the document is valid
// JSON/YAML but of an unknown shape or major version. Unknown fields are
// ignored. Curves repeated in the document are merged and, within a curve,
// the last keyframe at a given time wins.
func Decode(data []byte, format Format) (*curve.Action, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, malformed(err, "")
	}

	switch {
	case currentShape.Validate(generic) == nil:
		if err := checkVersion(generic); err != nil {
			return nil, err
		}
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, malformed(err, "")
		}
		return doc.action()
	case legacyShape.Validate(generic) == nil:
		var doc legacyDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, malformed(err, "")
		}
		return doc.action()
	default:
		return nil, &SchemaVersionError{Reason: `expected an object with "action_name" and "curves"`}
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, malformed(err, "")
	}
	converted, err := json.Marshal(generic)
	if err != nil {
		return nil, malformed(err, "")
	}
	return converted, nil
}

func checkVersion(generic any) error {
	raw, found := generic.(map[string]any)["version"]
	if !found {
		return nil
	}
	version, ok := raw.(string)
	if !ok {
		return malformed(nil, "version: expected a string")
	}
	major, _, _ := strings.Cut(version, ".")
	wantMajor, _, _ := strings.Cut(Version, ".")
	if major != wantMajor {
		return &SchemaVersionError{Version: version, Reason: "only version " + wantMajor + ".x is supported"}
	}
	return nil
}

// action converts a validated document into the model.
func (d *Document) action() (*curve.Action, error) {
	if err := validateRecord(d); err != nil {
		return nil, err
	}

	a := curve.NewAction(*d.ActionName)
	for _, rec := range d.Curves {
		key := curve.Key{DataPath: *rec.DataPath, ArrayIndex: *rec.ArrayIndex}
		kfs := make([]curve.Keyframe, 0, len(rec.Keyframes))
		for _, kr := range rec.Keyframes {
			kfs = append(kfs, kr.keyframe())
		}
		c, err := curve.NewCurve(key, kfs...)
		if err != nil {
			return nil, malformed(err, "curve %s", key)
		}
		c.Group = rec.Group
		if err := a.Merge(c); err != nil {
			return nil, malformed(err, "curve %s", key)
		}
	}
	return a, nil
}

func (r KeyframeRecord) keyframe() curve.Keyframe {
	return curve.Keyframe{
		Time:          *r.Time,
		Value:         *r.Value,
		Interpolation: curve.Interpolation(r.Interpolation),
		Easing:        curve.Easing(r.Easing),
		Type:          curve.KeyframeType(r.Type),
		Amplitude:     r.Amplitude,
		Back:          r.Back,
		Period:        r.Period,
		HandleLeft:    r.HandleLeft.handle(),
		HandleRight:   r.HandleRight.handle(),
	}
}

func (h *HandleRecord) handle() curve.Handle {
	return curve.Handle{Time: *h.Time, Value: *h.Value, Type: curve.HandleType(h.Type)}
}
