package domain

// ActivityRecord is one recommendation returned by the provider. Title is the
// natural identifier used to match reactions back to records; it is not
// guaranteed to be unique.
type ActivityRecord struct {
	Emoji       string  `json:"emoji"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Distance    float64 `json:"distance"`
}
