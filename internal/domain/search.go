package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout         = "2006-01-02"
	DefaultTimeOfDay   = "afternoon"
	DefaultMaxDistance = 10.0
)

// SearchParameters describes one recommendation request. Availability, when
// set, wins over Date+TimeOfDay.
type SearchParameters struct {
	EventType    EventType
	City         string
	KidAges      string
	Date         string // YYYY-MM-DD
	TimeOfDay    string
	Availability string
	MaxDistance  float64
	Preferences  string
}

// ResolveAvailability returns the human-readable availability phrase used
// downstream, e.g. "Saturday, December 27, 2025, afternoon".
func (p SearchParameters) ResolveAvailability() (string, error) {
	if p.Availability != "" {
		return p.Availability, nil
	}
	if p.Date == "" {
		return "", nil
	}
	d, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", p.Date)
	}
	tod := p.TimeOfDay
	if tod == "" {
		tod = DefaultTimeOfDay
	}
	return fmt.Sprintf("%s, %s", d.Format("Monday, January 2, 2006"), tod), nil
}

// NextSaturday returns the first Saturday strictly after now, as YYYY-MM-DD.
func NextSaturday(now time.Time) string {
	days := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days).Format(DateLayout)
}

// IsDining reports whether the search targets restaurants.
func (p SearchParameters) IsDining() bool {
	return p.EventType == EventDining
}
