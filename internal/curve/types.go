package curve

import (
	"fmt"
	"strconv"
	"strings"
)

// Interpolation is the interpolation mode from a keyframe to the next one.
type Interpolation string

const (
	InterpolationConstant Interpolation = "CONSTANT"
	InterpolationLinear   Interpolation = "LINEAR"
	InterpolationBezier   Interpolation = "BEZIER"
	InterpolationSine     Interpolation = "SINE"
	InterpolationQuad     Interpolation = "QUAD"
	InterpolationCubic    Interpolation = "CUBIC"
	InterpolationQuart    Interpolation = "QUART"
	InterpolationQuint    Interpolation = "QUINT"
	InterpolationExpo     Interpolation = "EXPO"
	InterpolationCirc     Interpolation = "CIRC"
	InterpolationBack     Interpolation = "BACK"
	InterpolationBounce   Interpolation = "BOUNCE"
	InterpolationElastic  Interpolation = "ELASTIC"
)

// Interpolations lists every supported interpolation mode.
var Interpolations = []Interpolation{
	InterpolationConstant, InterpolationLinear, InterpolationBezier,
	InterpolationSine, InterpolationQuad, InterpolationCubic, InterpolationQuart, InterpolationQuint,
	InterpolationExpo, InterpolationCirc, InterpolationBack, InterpolationBounce, InterpolationElastic,
}

func (i Interpolation) Valid() bool {
	for _, v := range Interpolations {
		if v == i {
			return true
		}
	}
	return false
}

// Easing selects which end of an easing interpolation is shaped.
type Easing string

const (
	EasingAuto  Easing = "AUTO"
	EasingIn    Easing = "EASE_IN"
	EasingOut   Easing = "EASE_OUT"
	EasingInOut Easing = "EASE_IN_OUT"
)

var Easings = []Easing{EasingAuto, EasingIn, EasingOut, EasingInOut}

func (e Easing) Valid() bool {
	for _, v := range Easings {
		if v == e {
			return true
		}
	}
	return false
}

// HandleType controls how a bezier handle is recalculated by the host.
type HandleType string

const (
	HandleFree        HandleType = "FREE"
	HandleAligned     HandleType = "ALIGNED"
	HandleVector      HandleType = "VECTOR"
	HandleAuto        HandleType = "AUTO"
	HandleAutoClamped HandleType = "AUTO_CLAMPED"
)

var HandleTypes = []HandleType{HandleFree, HandleAligned, HandleVector, HandleAuto, HandleAutoClamped}

func (h HandleType) Valid() bool {
	for _, v := range HandleTypes {
		if v == h {
			return true
		}
	}
	return false
}

// KeyframeType is the user-facing role of a keyframe (keyframe, breakdown, ...).
type KeyframeType string

const (
	TypeKeyframe   KeyframeType = "KEYFRAME"
	TypeBreakdown  KeyframeType = "BREAKDOWN"
	TypeMovingHold KeyframeType = "MOVING_HOLD"
	TypeExtreme    KeyframeType = "EXTREME"
	TypeJitter     KeyframeType = "JITTER"
)

var KeyframeTypes = []KeyframeType{TypeKeyframe, TypeBreakdown, TypeMovingHold, TypeExtreme, TypeJitter}

func (t KeyframeType) Valid() bool {
	for _, v := range KeyframeTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Handle is a bezier control point stored as an offset from its keyframe.
type Handle struct {
	Time  float64 // Offset in frames, usually negative for the left handle
	Value float64 // Offset in value units
	Type  HandleType
}

// Keyframe is a single keyed point of a curve.
type Keyframe struct {
	Time          float64 // Frame number
	Value         float64
	Interpolation Interpolation
	Easing        Easing
	Type          KeyframeType

	// Parameters of the BACK and ELASTIC interpolations.
	Amplitude float64
	Back      float64
	Period    float64

	HandleLeft  Handle
	HandleRight Handle
}

// NewKeyframe returns a bezier keyframe with auto-clamped flat handles,
// the defaults a host applies when a point is keyed by hand.
func NewKeyframe(time, value float64) Keyframe {
	return Keyframe{
		Time:          time,
		Value:         value,
		Interpolation: InterpolationBezier,
		Easing:        EasingAuto,
		Type:          TypeKeyframe,
		Back:          DefaultBack,
		HandleLeft:    Handle{Time: -1, Type: HandleAutoClamped},
		HandleRight:   Handle{Time: 1, Type: HandleAutoClamped},
	}
}

// DefaultBack is the overshoot used by the BACK interpolation when a keyframe does not set one.
const DefaultBack = 1.70158

// Key identifies a curve inside an action.
type Key struct {
	DataPath   string
	ArrayIndex int
}

func (k Key) String() string {
	return fmt.Sprintf("%s[%d]", k.DataPath, k.ArrayIndex)
}

// ParseKey reads a key written by Key.String. A path without an index has index 0.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	open := strings.LastIndex(s, "[")
	if s == "" || open > strings.LastIndex(s, "]") {
		return Key{}, fmt.Errorf("invalid curve key %q", s)
	}
	if !strings.HasSuffix(s, "]") {
		return Key{DataPath: s}, nil
	}
	if open <= 0 {
		return Key{}, fmt.Errorf("invalid curve key %q", s)
	}
	index, err := strconv.Atoi(s[open+1 : len(s)-1])
	if err != nil || index < 0 {
		return Key{}, fmt.Errorf("invalid array index in curve key %q", s)
	}
	return Key{DataPath: s[:open], ArrayIndex: index}, nil
}
