package preference

import (
	"strings"
)

const discoveryDirective = "When ranking results, give higher priority to options matching these preferences, " +
	"but ALWAYS include at least 1-2 options outside their usual interests for discovery."

// BuildSummary renders the categories liked or disliked at least
// MatchThreshold times as a paragraph for the provider prompt. It returns
// false when there is nothing strong enough to report.
func (e *Engine) BuildSummary() (string, bool) {
	e.mu.RLock()
	liked, disliked := tally(e.state.Reactions)
	e.mu.RUnlock()

	likes := e.describe(rank(liked, MatchThreshold))
	dislikes := e.describe(rank(disliked, MatchThreshold))
	if len(likes) == 0 && len(dislikes) == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString("**Family Preference History:**\n")
	if len(likes) > 0 {
		b.WriteString("The family tends to enjoy: " + strings.Join(likes, ", ") + "\n")
	}
	if len(dislikes) > 0 {
		b.WriteString("The family tends to avoid: " + strings.Join(dislikes, ", ") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(discoveryDirective)
	return b.String(), true
}

func (e *Engine) describe(scores []CategoryScore) []string {
	out := make([]string, 0, len(scores))
	for _, s := range scores {
		out = append(out, e.vocab.Describe(s.Tag))
	}
	return out
}
