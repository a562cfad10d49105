package taxonomy

import (
	"fmt"
	"strings"
)

// ReasonFor returns the explicit reason an auto-extracted tag rolls up to.
func (v *Vocabulary) ReasonFor(tag string) (string, bool) {
	r, ok := v.tagToReason[tag]
	return r, ok
}

// ExpandReason returns the auto-extracted tags behind an explicit reason.
func (v *Vocabulary) ExpandReason(reason string) []string {
	for _, g := range v.reasons {
		if g.Reason == reason {
			return append([]string(nil), g.Tags...)
		}
	}
	return nil
}

// Reasons lists the explicit reasons in table order.
func (v *Vocabulary) Reasons() []string {
	out := make([]string, 0, len(v.reasons))
	for _, g := range v.reasons {
		out = append(out, g.Reason)
	}
	return out
}

// IsReason reports whether s names an explicit reason.
func (v *Vocabulary) IsReason(s string) bool {
	for _, g := range v.reasons {
		if g.Reason == s {
			return true
		}
	}
	return false
}

// ParseReasons normalizes user-supplied reasons, rejecting unknown names.
func (v *Vocabulary) ParseReasons(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if !v.IsReason(r) {
			return nil, fmt.Errorf("unknown reason %q (valid: %s)", r, strings.Join(v.Reasons(), ", "))
		}
		out = append(out, r)
	}
	return NewTagSet(out...), nil
}
