package intelligence

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/alexanderramin/outings/internal/domain"
	"github.com/alexanderramin/outings/internal/llm"
)

var (
	// ErrNoResults means the provider explained it could not find anything
	// instead of returning an array.
	ErrNoResults = errors.New("no events found for this date")

	// ErrMalformedResponse means the reply could not be turned into records.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// RequiredFields lists the keys every result object must carry, in the order
// they are checked.
var RequiredFields = []string{"emoji", "title", "description", "location", "distance"}

var noResultsPhrases = []string{"unable to find", "could not find", "no specific events"}

var citeTag = regexp.MustCompile(`</?cite[^>]*>`)

// MissingFieldError reports the first required field absent from a result.
// Index is 1-based.
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Activity %d missing required field: %s", e.Index, e.Field)
}

// Is makes a MissingFieldError match ErrMalformedResponse.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// ParseActivities turns the provider's freeform text into records. The
// payload is the first fenced block if any, else the whole text; within it
// the span from the first '[' to the last ']' is decoded. Several arrays in
// one reply are not told apart.
func ParseActivities(text string) ([]domain.ActivityRecord, error) {
	candidate := llm.ExtractFencedBlock(text)
	span, ok := llm.ExtractArraySpan(candidate)
	if !ok {
		lower := strings.ToLower(text)
		for _, phrase := range noResultsPhrases {
			if strings.Contains(lower, phrase) {
				return nil, ErrNoResults
			}
		}
		return nil, fmt.Errorf("%w: no JSON array found in response", ErrMalformedResponse)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(llm.StripJSONComments(span)), &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	out := make([]domain.ActivityRecord, 0, len(elems))
	for i, raw := range elems {
		rec, err := decodeActivity(i+1, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeActivity(index int, raw json.RawMessage) (domain.ActivityRecord, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return domain.ActivityRecord{}, fmt.Errorf("%w: activity %d is not an object", ErrMalformedResponse, index)
	}
	for _, f := range RequiredFields {
		if _, ok := fields[f]; !ok {
			return domain.ActivityRecord{}, &MissingFieldError{Index: index, Field: f}
		}
	}

	var rec domain.ActivityRecord
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"emoji", &rec.Emoji},
		{"title", &rec.Title},
		{"description", &rec.Description},
		{"location", &rec.Location},
	} {
		s, err := stringField(fields[f.name])
		if err != nil {
			return domain.ActivityRecord{}, fmt.Errorf("%w: activity %d field %s: %v", ErrMalformedResponse, index, f.name, err)
		}
		*f.dst = s
	}

	d, err := distanceField(fields["distance"])
	if err != nil {
		return domain.ActivityRecord{}, fmt.Errorf("%w: activity %d field distance: %v", ErrMalformedResponse, index, err)
	}
	rec.Distance = d
	rec.Description = removeCitations(rec.Description)
	return rec, nil
}

func stringField(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

// distanceField accepts a number, a numeric string with an optional unit
// ("3.2 miles"), or null.
func distanceField(raw json.RawMessage) (float64, error) {
	if isNull(raw) {
		return 0, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("expected a number, got %s", string(raw))
	}
	num := strings.TrimSpace(s)
	if i := strings.IndexFunc(num, func(r rune) bool { return (r < '0' || r > '9') && r != '.' }); i >= 0 {
		num = num[:i]
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", s)
	}
	return f, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func removeCitations(s string) string {
	return strings.TrimSpace(citeTag.ReplaceAllString(s, ""))
}
