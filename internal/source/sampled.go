package source

import (
	"fmt"
	"math"

	"github.com/ivlev/animio/internal/curve"
)

// MaxFrame is the highest frame number a host scene can hold. Sampled and
// baked ranges must lie within [-MaxFrame, MaxFrame].
const MaxFrame = 1048574

// CheckRange reports an error unless start and end are finite frames within
// MaxFrame of zero.
func CheckRange(start, end float64) error {
	for _, f := range []float64{start, end} {
		if math.IsNaN(f) || math.Abs(f) > MaxFrame {
			return fmt.Errorf("frame range %g..%g is outside ±%d", start, end, MaxFrame)
		}
	}
	return nil
}

// SampledCurve is a baked curve: one value per frame starting at Start.
type SampledCurve struct {
	key    curve.Key
	group  string
	Start  float64
	Values []float64
}

func NewSampledCurve(key curve.Key, group string, start float64, values []float64) *SampledCurve {
	return &SampledCurve{key: key, group: group, Start: start, Values: values}
}

func (s *SampledCurve) Key() curve.Key              { return s.key }
func (s *SampledCurve) Group() string               { return s.group }
func (s *SampledCurve) Sampled() bool               { return true }
func (s *SampledCurve) Keyframes() []curve.Keyframe { return nil }

func (s *SampledCurve) Range() (float64, float64, bool) {
	if len(s.Values) == 0 {
		return 0, 0, false
	}
	return s.Start, s.Start + float64(len(s.Values)-1), true
}

// Evaluate returns the sample at frame, linearly blending neighbouring
// samples for fractional frames and holding the end values outside the range.
func (s *SampledCurve) Evaluate(frame float64) float64 {
	n := len(s.Values)
	if n == 0 {
		return 0
	}
	pos := frame - s.Start
	if pos <= 0 {
		return s.Values[0]
	}
	if pos >= float64(n-1) {
		return s.Values[n-1]
	}
	i := int(math.Floor(pos))
	frac := pos - float64(i)
	return s.Values[i] + (s.Values[i+1]-s.Values[i])*frac
}

// Bake samples c at every whole frame of its keyed range. Curves reaching
// beyond MaxFrame are rejected.
func Bake(c *curve.Curve) (*SampledCurve, error) {
	out := NewSampledCurve(c.Key(), c.Group, 0, nil)
	start, end, ok := c.Range()
	if !ok {
		return out, nil
	}
	first, last := math.Floor(start), math.Ceil(end)
	if err := CheckRange(first, last); err != nil {
		return nil, fmt.Errorf("bake %s: %w", c.Key(), err)
	}
	n := int(last-first) + 1
	out.Start = first
	out.Values = make([]float64, n)
	for i := range n {
		out.Values[i] = c.Evaluate(first + float64(i))
	}
	return out, nil
}
