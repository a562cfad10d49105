package domain

type EventType string

const (
	EventActivity EventType = "activity"
	EventDining   EventType = "dining"
)

// ParseEventType maps free-form input onto an EventType. Anything other than
// "dining" is treated as an activity search.
func ParseEventType(s string) EventType {
	if s == string(EventDining) {
		return EventDining
	}
	return EventActivity
}

// ReactionValue is a thumbs-up (+1) or thumbs-down (-1) judgment.
// ReactionNone is only ever returned from lookups.
type ReactionValue int

const (
	ReactionDown ReactionValue = -1
	ReactionNone ReactionValue = 0
	ReactionUp   ReactionValue = 1
)

// Valid reports whether v can be stored.
func (v ReactionValue) Valid() bool {
	return v == ReactionUp || v == ReactionDown
}

func (v ReactionValue) String() string {
	switch v {
	case ReactionUp:
		return "up"
	case ReactionDown:
		return "down"
	default:
		return "none"
	}
}
