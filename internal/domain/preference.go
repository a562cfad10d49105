package domain

// PreferenceVersion is the schema version of the persisted store. Stores
// carrying any other version are discarded on load.
const PreferenceVersion = 1

// Reaction is a user's judgment on one titled result together with the
// categories the judgment is attributed to.
type Reaction struct {
	Title      string        `json:"title"`
	Categories []string      `json:"categories"`
	Value      ReactionValue `json:"reaction"`
	Date       string        `json:"date"`
}

// PreferenceStore holds at most one reaction per title, in insertion order.
type PreferenceStore struct {
	Version   int        `json:"version"`
	Reactions []Reaction `json:"reactions"`
}

// NewPreferenceStore returns an empty store at the current version.
func NewPreferenceStore() PreferenceStore {
	return PreferenceStore{Version: PreferenceVersion, Reactions: []Reaction{}}
}

// Clone returns a deep copy so callers can mutate without affecting readers.
func (s PreferenceStore) Clone() PreferenceStore {
	out := PreferenceStore{Version: s.Version, Reactions: make([]Reaction, len(s.Reactions))}
	for i, r := range s.Reactions {
		r.Categories = append([]string(nil), r.Categories...)
		out.Reactions[i] = r
	}
	return out
}

// Find returns the reaction stored for title, if any.
func (s PreferenceStore) Find(title string) (Reaction, bool) {
	for _, r := range s.Reactions {
		if r.Title == title {
			return r, true
		}
	}
	return Reaction{}, false
}

// WithReaction returns a copy of s where any reaction for r.Title has been
// removed and r appended.
func (s PreferenceStore) WithReaction(r Reaction) PreferenceStore {
	out := PreferenceStore{Version: s.Version, Reactions: make([]Reaction, 0, len(s.Reactions)+1)}
	for _, existing := range s.Reactions {
		if existing.Title == r.Title {
			continue
		}
		existing.Categories = append([]string(nil), existing.Categories...)
		out.Reactions = append(out.Reactions, existing)
	}
	r.Categories = append([]string(nil), r.Categories...)
	out.Reactions = append(out.Reactions, r)
	return out
}
