package taxonomy

import (
	"strings"

	"github.com/alexanderramin/outings/internal/domain"
)

// Extract returns the tags whose keywords occur in the record's title or
// description. Matching is a case-insensitive substring test with no
// tokenization or negation handling. Every matched tag that belongs to a
// reason group also contributes that reason. Never empty: falls back to
// {general}.
func (v *Vocabulary) Extract(rec domain.ActivityRecord) TagSet {
	return v.ExtractText(rec.Title + " " + rec.Description)
}

// ExtractText is Extract over arbitrary text.
func (v *Vocabulary) ExtractText(text string) TagSet {
	text = strings.ToLower(text)

	var tags []string
	for _, c := range v.categories {
		if !containsAny(text, c.Keywords) {
			continue
		}
		tags = append(tags, c.Tag)
		if reason, ok := v.tagToReason[c.Tag]; ok {
			tags = append(tags, reason)
		}
	}

	if len(tags) == 0 {
		return TagSet{TagGeneral}
	}
	return NewTagSet(tags...)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
