// Package reconcile combines imported curves with the action already on an object.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/ivlev/animio/internal/curve"
)

// Policy selects how imported curves are combined with the existing action.
type Policy int

const (
	// ReplaceAction discards the existing action and uses the imported one.
	ReplaceAction Policy = iota
	// ReplaceOrAddCurves swaps whole curves that exist in both and adds new ones.
	ReplaceOrAddCurves
	// MergeOrAddKeyframes inserts imported keyframes into matching curves.
	MergeOrAddKeyframes
)

var policyNames = map[Policy]string{
	ReplaceAction:       "replace-action",
	ReplaceOrAddCurves:  "replace-curves",
	MergeOrAddKeyframes: "merge-keyframes",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy accepts the names printed by Policy.String plus the short
// aliases "replace", "curves" and "merge".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "replace-action", "replace", "action":
		return ReplaceAction, nil
	case "replace-curves", "curves":
		return ReplaceOrAddCurves, nil
	case "merge-keyframes", "merge":
		return MergeOrAddKeyframes, nil
	default:
		return 0, fmt.Errorf("unknown import policy %q (replace-action, replace-curves, merge-keyframes)", s)
	}
}

// UnsupportedPolicyError is returned when the policy cannot be applied, which
// happens when there is no existing action to combine with.
type UnsupportedPolicyError struct {
	Policy Policy
	Reason string
}

func (e *UnsupportedPolicyError) Error() string {
	return fmt.Sprintf("policy %s is not supported: %s", e.Policy, e.Reason)
}

// KeyframeFilter reports whether an existing keyframe is excluded from the
// merge. Excluded keyframes are kept as they are and imported keyframes at the
// same time are dropped. A nil filter excludes nothing.
type KeyframeFilter func(key curve.Key, kf curve.Keyframe) bool

// Reconcile returns the action that results from applying policy to the
// imported and existing actions. existing may be nil, in which case only
// ReplaceAction is allowed. Neither input is modified.
func Reconcile(imported, existing *curve.Action, policy Policy, filter KeyframeFilter) (*curve.Action, error) {
	if _, ok := policyNames[policy]; !ok {
		return nil, &UnsupportedPolicyError{Policy: policy, Reason: "unknown policy"}
	}
	if imported == nil {
		return nil, fmt.Errorf("reconcile: no imported action")
	}

	if existing == nil {
		if policy != ReplaceAction {
			return nil, &UnsupportedPolicyError{Policy: policy, Reason: "the object has no action to combine with"}
		}
		return imported.Clone(), nil
	}

	switch policy {
	case ReplaceAction:
		return imported.Clone(), nil
	case ReplaceOrAddCurves:
		return replaceCurves(imported, existing), nil
	default:
		return mergeKeyframes(imported, existing, filter)
	}
}

func replaceCurves(imported, existing *curve.Action) *curve.Action {
	out := existing.Clone()
	for _, c := range imported.Curves() {
		out.Put(c.Clone())
	}
	return out
}

func mergeKeyframes(imported, existing *curve.Action, filter KeyframeFilter) (*curve.Action, error) {
	out := existing.Clone()
	for _, src := range imported.Curves() {
		dst, ok := out.Curve(src.Key())
		if !ok {
			out.Put(src.Clone())
			continue
		}
		if dst.Group == "" {
			dst.Group = src.Group
		}
		for _, kf := range src.Keyframes() {
			if filter != nil {
				if old, found := dst.At(kf.Time); found && filter(dst.Key(), old) {
					continue
				}
			}
			if _, err := dst.Insert(kf); err != nil {
				return nil, fmt.Errorf("merge %s: %w", src.Key(), err)
			}
		}
	}
	return out, nil
}
