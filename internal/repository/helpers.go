package repository

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// encodeCategories renders a category list as a JSON array for the
// categories column. A nil slice is stored as "[]".
func encodeCategories(categories []string) (string, error) {
	if categories == nil {
		categories = []string{}
	}
	b, err := json.Marshal(categories)
	if err != nil {
		return "", fmt.Errorf("encoding categories: %w", err)
	}
	return string(b), nil
}

func decodeCategories(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decoding categories %q: %w", raw, err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
