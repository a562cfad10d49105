package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/outings/internal/app"
	"github.com/alexanderramin/outings/internal/domain"
)

// Describer turns a category tag into its human-readable description.
type Describer func(tag string) string

// FormatRecommendations renders ranked results with their match badges and
// any earlier reaction.
func FormatRecommendations(resp *app.RecommendResponse, describe Describer) string {
	var b strings.Builder

	title := fmt.Sprintf("Top %d Recommendations", len(resp.Activities))
	if resp.EventType == domain.EventDining {
		title = fmt.Sprintf("Top %d Restaurants", len(resp.Activities))
	}
	b.WriteString(Header(title))
	b.WriteString("\n")
	if resp.Availability != "" {
		b.WriteString(Dim(resp.Availability))
		b.WriteString("\n")
	}
	if resp.SummaryUsed {
		b.WriteString(Dim("Sorted by relevance to your family's history"))
		b.WriteString("\n")
	}

	for i, a := range resp.Activities {
		b.WriteString("\n")
		b.WriteString(formatActivity(i+1, a, describe))
	}
	return b.String()
}

func formatActivity(rank int, a app.RecommendedActivity, describe Describer) string {
	var b strings.Builder

	b.WriteString(StylePurple.Render(fmt.Sprintf("#%d", rank)))
	if a.Emoji != "" {
		b.WriteString(" " + a.Emoji)
	}
	b.WriteString(" " + Bold(a.Title) + "\n")

	if a.Match {
		b.WriteString("   ")
		b.WriteString(MatchBadge(a.MatchingCategories, describe))
		b.WriteString("\n")
	}
	if badge := ReactionBadge(a.Reaction); badge != "" {
		b.WriteString("   ")
		b.WriteString(badge)
		b.WriteString("\n")
	}
	if a.Description != "" {
		b.WriteString("   ")
		b.WriteString(StyleFg.Render(a.Description))
		b.WriteString("\n")
	}

	var footer []string
	if a.Location != "" {
		footer = append(footer, "📍 "+a.Location)
	}
	footer = append(footer, "🚗 "+FormatDistance(a.Distance))
	b.WriteString("   ")
	b.WriteString(Dim(strings.Join(footer, "   ")))
	b.WriteString("\n")
	return b.String()
}

// MatchBadge renders the "matches your interests" marker for a result.
func MatchBadge(tags []string, describe Describer) string {
	if len(tags) == 0 {
		return StyleYellow.Render("★ Matches your interests")
	}
	return StyleYellow.Render("★ Matches your interests in " + JoinList(describeAll(tags, describe)))
}

// FormatReactResponse confirms a stored reaction.
func FormatReactResponse(resp *app.ReactResponse, describe Describer) string {
	var b strings.Builder

	verb := "Liked"
	style := StyleGreen
	if resp.Reaction.Value == domain.ReactionDown {
		verb = "Disliked"
		style = StyleRed
	}
	fmt.Fprintf(&b, "%s %s\n", style.Render(verb), Bold(resp.Reaction.Title))

	fmt.Fprintf(&b, "%s %s\n", Dim("Categories:"), strings.Join(describeAll(resp.Reaction.Categories, describe), ", "))
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("%d reactions stored", resp.TotalStored)))
	return b.String()
}

func describeAll(tags []string, describe Describer) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag
		if describe != nil {
			out[i] = describe(tag)
		}
	}
	return out
}
