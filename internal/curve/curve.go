package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNonFiniteTime is returned when a keyframe time is NaN or infinite and
// therefore cannot be ordered.
var ErrNonFiniteTime = errors.New("keyframe time is not finite")

// Curve is the animation of one property component.
// Keyframes are kept sorted by time and no two share a time.
type Curve struct {
	key       Key
	Group     string
	keyframes []Keyframe
}

// NewCurve builds a curve from keyframes in any order.
// When several keyframes share a time, the last one wins.
func NewCurve(key Key, keyframes ...Keyframe) (*Curve, error) {
	c := &Curve{key: key}
	for _, kf := range keyframes {
		if _, err := c.Insert(kf); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Curve) Key() Key         { return c.key }
func (c *Curve) DataPath() string { return c.key.DataPath }
func (c *Curve) ArrayIndex() int  { return c.key.ArrayIndex }
func (c *Curve) Len() int         { return len(c.keyframes) }
func (c *Curve) IsEmpty() bool    { return len(c.keyframes) == 0 }

// Keyframes returns a copy of the keyframes in time order.
func (c *Curve) Keyframes() []Keyframe {
	out := make([]Keyframe, len(c.keyframes))
	copy(out, c.keyframes)
	return out
}

// Times returns the keyframe times in increasing order.
func (c *Curve) Times() []float64 {
	out := make([]float64, len(c.keyframes))
	for i, kf := range c.keyframes {
		out[i] = kf.Time
	}
	return out
}

// search returns the index of the first keyframe with time >= t.
func (c *Curve) search(t float64) int {
	return sort.Search(len(c.keyframes), func(i int) bool {
		return c.keyframes[i].Time >= t
	})
}

// At returns the keyframe placed exactly at time t.
func (c *Curve) At(t float64) (Keyframe, bool) {
	i := c.search(t)
	if i < len(c.keyframes) && c.keyframes[i].Time == t {
		return c.keyframes[i], true
	}
	return Keyframe{}, false
}

// Insert places kf at its time. An existing keyframe at the same time is
// overwritten and replaced is true.
func (c *Curve) Insert(kf Keyframe) (replaced bool, err error) {
	if math.IsNaN(kf.Time) || math.IsInf(kf.Time, 0) {
		return false, fmt.Errorf("%s: %w", c.key, ErrNonFiniteTime)
	}
	i := c.search(kf.Time)
	if i < len(c.keyframes) && c.keyframes[i].Time == kf.Time {
		c.keyframes[i] = kf
		return true, nil
	}
	c.keyframes = append(c.keyframes, Keyframe{})
	copy(c.keyframes[i+1:], c.keyframes[i:])
	c.keyframes[i] = kf
	return false, nil
}

// Range returns the times of the first and last keyframes.
func (c *Curve) Range() (start, end float64, ok bool) {
	if len(c.keyframes) == 0 {
		return 0, 0, false
	}
	return c.keyframes[0].Time, c.keyframes[len(c.keyframes)-1].Time, true
}

func (c *Curve) Clone() *Curve {
	return &Curve{key: c.key, Group: c.Group, keyframes: c.Keyframes()}
}

// Equal reports whether both curves have the same key, group and keyframes.
func (c *Curve) Equal(o *Curve) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.key != o.key || c.Group != o.Group || len(c.keyframes) != len(o.keyframes) {
		return false
	}
	for i := range c.keyframes {
		if c.keyframes[i] != o.keyframes[i] {
			return false
		}
	}
	return true
}
