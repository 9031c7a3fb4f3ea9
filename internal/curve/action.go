package curve

import "fmt"

// Action is a named set of curves animating one object.
// Curves keep their insertion order and have pairwise distinct keys.
type Action struct {
	Name   string
	curves []*Curve
}

func NewAction(name string) *Action {
	return &Action{Name: name}
}

// Curves returns the curves in insertion order. The slice is a copy, the curves are not.
func (a *Action) Curves() []*Curve {
	out := make([]*Curve, len(a.curves))
	copy(out, a.curves)
	return out
}

func (a *Action) Len() int {
	return len(a.curves)
}

func (a *Action) Keys() []Key {
	keys := make([]Key, len(a.curves))
	for i, c := range a.curves {
		keys[i] = c.key
	}
	return keys
}

func (a *Action) index(key Key) int {
	for i, c := range a.curves {
		if c.key == key {
			return i
		}
	}
	return -1
}

// Curve returns the curve animating key.
func (a *Action) Curve(key Key) (*Curve, bool) {
	if i := a.index(key); i >= 0 {
		return a.curves[i], true
	}
	return nil, false
}

// Add appends c and fails if a curve with the same key already exists.
func (a *Action) Add(c *Curve) error {
	if a.index(c.key) >= 0 {
		return fmt.Errorf("action %q: duplicate curve %s", a.Name, c.key)
	}
	a.curves = append(a.curves, c)
	return nil
}

// Put stores c, replacing the whole curve with the same key in place.
// It reports whether a curve was replaced.
func (a *Action) Put(c *Curve) bool {
	if i := a.index(c.key); i >= 0 {
		a.curves[i] = c
		return true
	}
	a.curves = append(a.curves, c)
	return false
}

// Merge inserts the keyframes of c into the curve with the same key,
// overwriting keyframes at equal times. Without a matching curve, c is added.
func (a *Action) Merge(c *Curve) error {
	dst, ok := a.Curve(c.key)
	if !ok {
		a.curves = append(a.curves, c)
		return nil
	}
	if dst.Group == "" {
		dst.Group = c.Group
	}
	for _, kf := range c.keyframes {
		if _, err := dst.Insert(kf); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes the curve with the given key.
func (a *Action) Remove(key Key) bool {
	if i := a.index(key); i >= 0 {
		a.curves = append(a.curves[:i], a.curves[i+1:]...)
		return true
	}
	return false
}

// Clone returns a deep copy.
func (a *Action) Clone() *Action {
	out := &Action{Name: a.Name, curves: make([]*Curve, len(a.curves))}
	for i, c := range a.curves {
		out.curves[i] = c.Clone()
	}
	return out
}

// KeyframeCount returns the number of keyframes over all curves.
func (a *Action) KeyframeCount() int {
	n := 0
	for _, c := range a.curves {
		n += len(c.keyframes)
	}
	return n
}

// Equal reports whether both actions have the same name and equal curves in the same order.
func (a *Action) Equal(o *Action) bool {
	if a == nil || o == nil {
		return a == o
	}
	if a.Name != o.Name || len(a.curves) != len(o.curves) {
		return false
	}
	for i := range a.curves {
		if !a.curves[i].Equal(o.curves[i]) {
			return false
		}
	}
	return true
}
