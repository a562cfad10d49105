package preference

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/outings/internal/domain"
	"github.com/alexanderramin/outings/internal/taxonomy"
)

// MatchThreshold is the number of positive reactions a category needs before
// results in that category are flagged as matches.
const MatchThreshold = 2

// ErrInvalidReaction is returned when a reaction value is neither up nor down.
var ErrInvalidReaction = errors.New("reaction must be +1 or -1")

// CategoryScore is the number of reactions attributed to one category.
type CategoryScore struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// PreferenceStats summarizes the stored reactions.
type PreferenceStats struct {
	Total    int             `json:"total"`
	Liked    int             `json:"liked"`
	Disliked int             `json:"disliked"`
	Likes    []CategoryScore `json:"likes"`
	Dislikes []CategoryScore `json:"dislikes"`
}

// Engine owns the preference store: it records reactions, answers match
// queries and renders the preference summary. Safe for concurrent use.
type Engine struct {
	vocab *taxonomy.Vocabulary
	store *Store
	now   func() time.Time

	mu    sync.RWMutex
	state domain.PreferenceStore
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock overrides the clock used to date reactions.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine loads the persisted store and returns an engine over it.
func NewEngine(ctx context.Context, vocab *taxonomy.Vocabulary, store *Store, opts ...EngineOption) *Engine {
	e := &Engine{vocab: vocab, store: store, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	e.state = store.Load(ctx)
	return e
}

// AddReaction records value for rec, replacing any earlier reaction to the
// same title, and persists the result. Explicit reasons are only honored on
// thumbs-up; otherwise categories come from extraction.
func (e *Engine) AddReaction(ctx context.Context, rec domain.ActivityRecord, value domain.ReactionValue, reasons ...string) (domain.Reaction, error) {
	if !value.Valid() {
		return domain.Reaction{}, fmt.Errorf("%w: got %d", ErrInvalidReaction, int(value))
	}

	var categories []string
	if value == domain.ReactionUp && len(reasons) > 0 {
		parsed, err := e.vocab.ParseReasons(reasons)
		if err != nil {
			return domain.Reaction{}, err
		}
		categories = parsed
	}
	if len(categories) == 0 {
		categories = e.vocab.Extract(rec)
	}

	reaction := domain.Reaction{
		Title:      rec.Title,
		Categories: categories,
		Value:      value,
		Date:       e.now().Format(domain.DateLayout),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = e.state.WithReaction(reaction)
	e.store.Save(ctx, e.state)
	return reaction, nil
}

// ReactionFor returns the latest reaction for title, or ReactionNone.
func (e *Engine) ReactionFor(title string) domain.ReactionValue {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if r, ok := e.state.Find(title); ok {
		return r.Value
	}
	return domain.ReactionNone
}

// Matches reports whether rec falls in a category the family has liked at
// least MatchThreshold times. Tags overlapping any exclude entry (substring
// in either direction, case-insensitive) are ignored.
func (e *Engine) Matches(rec domain.ActivityRecord, exclude ...string) bool {
	return len(e.MatchingCategories(rec, exclude...)) > 0
}

// MatchingCategories returns the tags of rec that reached MatchThreshold.
func (e *Engine) MatchingCategories(rec domain.ActivityRecord, exclude ...string) []string {
	likes := e.positiveCounts()

	var out []string
	for _, tag := range e.vocab.Extract(rec) {
		if excluded(tag, exclude) {
			continue
		}
		if likes[tag] >= MatchThreshold {
			out = append(out, tag)
		}
	}
	return out
}

func excluded(tag string, exclude []string) bool {
	tag = strings.ToLower(tag)
	for _, ex := range exclude {
		ex = strings.ToLower(strings.TrimSpace(ex))
		if ex == "" {
			continue
		}
		if strings.Contains(tag, ex) || strings.Contains(ex, tag) {
			return true
		}
	}
	return false
}

func (e *Engine) positiveCounts() map[string]int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	counts := make(map[string]int)
	for _, r := range e.state.Reactions {
		if r.Value != domain.ReactionUp {
			continue
		}
		for _, c := range r.Categories {
			counts[c]++
		}
	}
	return counts
}

// Clear resets to an empty store and persists it.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = domain.NewPreferenceStore()
	e.store.Save(ctx, e.state)
}

// Reactions returns a copy of the stored reactions in insertion order.
func (e *Engine) Reactions() []domain.Reaction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Clone().Reactions
}

// Stats summarizes the store. Category scores are sorted by count, then tag.
func (e *Engine) Stats() PreferenceStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stats := PreferenceStats{Total: len(e.state.Reactions)}
	liked, disliked := tally(e.state.Reactions)
	for _, r := range e.state.Reactions {
		if r.Value == domain.ReactionUp {
			stats.Liked++
		} else {
			stats.Disliked++
		}
	}
	stats.Likes = rank(liked, 1)
	stats.Dislikes = rank(disliked, 1)
	return stats
}

func tally(reactions []domain.Reaction) (liked, disliked map[string]int) {
	liked = make(map[string]int)
	disliked = make(map[string]int)
	for _, r := range reactions {
		target := disliked
		if r.Value == domain.ReactionUp {
			target = liked
		}
		for _, c := range r.Categories {
			target[c]++
		}
	}
	return liked, disliked
}

// rank returns the tags with at least floor reactions, highest count first
// and ties broken by tag.
func rank(counts map[string]int, floor int) []CategoryScore {
	out := make([]CategoryScore, 0, len(counts))
	for tag, n := range counts {
		if n >= floor {
			out = append(out, CategoryScore{Tag: tag, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
