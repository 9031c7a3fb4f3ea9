package document

import (
	"github.com/ivlev/animio/internal/curve"
)

// legacyDocument is the flat layout written by the first exporter: a single
// list of keyframes, each naming its curve, with absolute handle coordinates.
type legacyDocument struct {
	Name      *string          `json:"name" validate:"required"`
	Keyframes []legacyKeyframe `json:"keyframes" validate:"required,dive"`
}

type legacyKeyframe struct {
	DataPath        *string   `json:"data_path" validate:"required"`
	ArrayIndex      *int      `json:"array_index" validate:"required,min=0"`
	Group           string    `json:"group"`
	Co              []float64 `json:"co" validate:"required,len=2"`
	Interpolation   string    `json:"interpolation" validate:"required,interpolation"`
	Easing          string    `json:"easing" validate:"required,easing"`
	Type            string    `json:"type" validate:"omitempty,keyframe_type"`
	Amplitude       float64   `json:"amplitude"`
	Back            float64   `json:"back"`
	Period          float64   `json:"period"`
	HandleLeft      []float64 `json:"handle_left" validate:"required,len=2"`
	HandleLeftType  string    `json:"handle_left_type" validate:"required,handle_type"`
	HandleRight     []float64 `json:"handle_right" validate:"required,len=2"`
	HandleRightType string    `json:"handle_right_type" validate:"required,handle_type"`
}

func (d *legacyDocument) action() (*curve.Action, error) {
	if err := validateRecord(d); err != nil {
		return nil, err
	}

	a := curve.NewAction(*d.Name)
	for _, lk := range d.Keyframes {
		key := curve.Key{DataPath: *lk.DataPath, ArrayIndex: *lk.ArrayIndex}
		c, err := curve.NewCurve(key, lk.keyframe())
		if err != nil {
			return nil, malformed(err, "curve %s", key)
		}
		c.Group = lk.Group
		if err := a.Merge(c); err != nil {
			return nil, malformed(err, "curve %s", key)
		}
	}
	return a, nil
}

func (lk legacyKeyframe) keyframe() curve.Keyframe {
	t, v := lk.Co[0], lk.Co[1]
	return curve.Keyframe{
		Time:          t,
		Value:         v,
		Interpolation: curve.Interpolation(lk.Interpolation),
		Easing:        curve.Easing(lk.Easing),
		Type:          curve.KeyframeType(lk.Type),
		Amplitude:     lk.Amplitude,
		Back:          lk.Back,
		Period:        lk.Period,
		HandleLeft: curve.Handle{
			Time:  lk.HandleLeft[0] - t,
			Value: lk.HandleLeft[1] - v,
			Type:  curve.HandleType(lk.HandleLeftType),
		},
		HandleRight: curve.Handle{
			Time:  lk.HandleRight[0] - t,
			Value: lk.HandleRight[1] - v,
			Type:  curve.HandleType(lk.HandleRightType),
		},
	}
}
