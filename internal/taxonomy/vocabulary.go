// Package taxonomy reduces free-text activity and restaurant descriptions to
// a closed set of category tags and maps those tags to the explicit reasons
// a user can give for liking a result.
package taxonomy

import (
	"fmt"
	"sort"
	"strings"
)

// TagGeneral is returned when no keyword matches.
const TagGeneral = "general"

// Explicit reasons a user can attach to a thumbs-up.
const (
	ReasonMenu         = "menu"
	ReasonAmbience     = "ambience"
	ReasonAuthenticity = "authenticity"
)

// Category is one auto-extracted tag and the keywords that trigger it.
type Category struct {
	Tag         string
	Keywords    []string
	Description string
}

// ReasonGroup is an explicit reason and the auto-extracted tags it expands to.
type ReasonGroup struct {
	Reason      string
	Tags        []string
	Description string
}

// Vocabulary is the immutable keyword and reason table. Construct it once
// with NewVocabulary and share it.
type Vocabulary struct {
	categories   []Category
	reasons      []ReasonGroup
	tagToReason  map[string]string
	descriptions map[string]string
	known        map[string]bool
}

// NewVocabulary validates and indexes the given tables. Every reason tag must
// name a known category and no tag may be claimed by two reasons.
func NewVocabulary(categories []Category, reasons []ReasonGroup) (*Vocabulary, error) {
	v := &Vocabulary{
		tagToReason:  make(map[string]string),
		descriptions: make(map[string]string),
		known:        map[string]bool{TagGeneral: true},
	}

	for _, c := range categories {
		if c.Tag == "" {
			return nil, fmt.Errorf("category with empty tag")
		}
		if v.known[c.Tag] {
			return nil, fmt.Errorf("duplicate category %q", c.Tag)
		}
		if len(c.Keywords) == 0 {
			return nil, fmt.Errorf("category %q has no keywords", c.Tag)
		}
		kw := make([]string, len(c.Keywords))
		for i, k := range c.Keywords {
			kw[i] = strings.ToLower(k)
		}
		v.categories = append(v.categories, Category{Tag: c.Tag, Keywords: kw, Description: c.Description})
		v.known[c.Tag] = true
		if c.Description != "" {
			v.descriptions[c.Tag] = c.Description
		}
	}

	for _, r := range reasons {
		if r.Reason == "" {
			return nil, fmt.Errorf("reason with empty name")
		}
		if v.known[r.Reason] {
			return nil, fmt.Errorf("reason %q collides with an existing tag", r.Reason)
		}
		for _, tag := range r.Tags {
			if !v.isCategory(tag) {
				return nil, fmt.Errorf("reason %q maps to unknown tag %q", r.Reason, tag)
			}
			if owner, taken := v.tagToReason[tag]; taken {
				return nil, fmt.Errorf("tag %q claimed by both %q and %q", tag, owner, r.Reason)
			}
			v.tagToReason[tag] = r.Reason
		}
		v.reasons = append(v.reasons, ReasonGroup{
			Reason:      r.Reason,
			Tags:        append([]string(nil), r.Tags...),
			Description: r.Description,
		})
		v.known[r.Reason] = true
		if r.Description != "" {
			v.descriptions[r.Reason] = r.Description
		}
	}

	return v, nil
}

// MustDefaultVocabulary builds the built-in tables and panics if they are
// inconsistent.
func MustDefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary(DefaultCategories(), DefaultReasons())
	if err != nil {
		panic(fmt.Sprintf("taxonomy: invalid built-in vocabulary: %v", err))
	}
	return v
}

func (v *Vocabulary) isCategory(tag string) bool {
	for _, c := range v.categories {
		if c.Tag == tag {
			return true
		}
	}
	return false
}

// Known reports whether tag belongs to the vocabulary, including reasons and
// the general sentinel.
func (v *Vocabulary) Known(tag string) bool {
	return v.known[tag]
}

// Describe returns a human-readable phrase for tag, falling back to the tag
// with hyphens replaced by spaces.
func (v *Vocabulary) Describe(tag string) string {
	if d, ok := v.descriptions[tag]; ok {
		return d
	}
	return strings.ReplaceAll(tag, "-", " ")
}

// Tags lists every category tag in table order.
func (v *Vocabulary) Tags() []string {
	out := make([]string, 0, len(v.categories))
	for _, c := range v.categories {
		out = append(out, c.Tag)
	}
	return out
}

// TagSet is a sorted, de-duplicated set of tags.
type TagSet []string

// NewTagSet sorts and de-duplicates tags.
func NewTagSet(tags ...string) TagSet {
	seen := make(map[string]bool, len(tags))
	out := make(TagSet, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether tag is in the set.
func (s TagSet) Contains(tag string) bool {
	i := sort.SearchStrings(s, tag)
	return i < len(s) && s[i] == tag
}
