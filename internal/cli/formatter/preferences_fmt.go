package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/outings/internal/app"
	"github.com/alexanderramin/outings/internal/preference"
)

// FormatPreferences renders the learned summary followed by per-category
// counts.
func FormatPreferences(view app.PreferencesView, describe Describer) string {
	var b strings.Builder

	b.WriteString(Header("Family Preferences"))
	b.WriteString("\n")
	if view.Stats.Total == 0 {
		b.WriteString(Dim("No reactions yet. Rate a few results with `outings search --react`."))
		b.WriteString("\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		Dim("Reactions:"), Bold(strconv.Itoa(view.Stats.Total)),
		StyleGreen.Render("👍"), strconv.Itoa(view.Stats.Liked),
		StyleRed.Render("👎"), strconv.Itoa(view.Stats.Disliked))

	if view.HasSummary {
		b.WriteString("\n")
		b.WriteString(RenderBox("Sent with every search", view.Summary))
		b.WriteString("\n")
	} else {
		b.WriteString(Dim("Not enough repeated reactions for a summary yet."))
		b.WriteString("\n")
	}

	if len(view.Stats.Likes) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleGreen.Render("Liked categories"))
		b.WriteString("\n")
		b.WriteString(scoreTable(view.Stats.Likes, describe))
	}
	if len(view.Stats.Dislikes) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleRed.Render("Disliked categories"))
		b.WriteString("\n")
		b.WriteString(scoreTable(view.Stats.Dislikes, describe))
	}
	return b.String()
}

func scoreTable(scores []preference.CategoryScore, describe Describer) string {
	rows := make([][]string, 0, len(scores))
	for _, s := range scores {
		desc := s.Tag
		if describe != nil {
			desc = describe(s.Tag)
		}
		rows = append(rows, []string{s.Tag, desc, strconv.Itoa(s.Count)})
	}
	return RenderTable([]string{"CATEGORY", "DESCRIPTION", "COUNT"}, rows)
}

// FormatReactionList renders every stored reaction, most recent first.
func FormatReactionList(view app.PreferencesView, now time.Time) string {
	if len(view.Reactions) == 0 {
		return Dim("No reactions stored.") + "\n"
	}
	rows := make([][]string, 0, len(view.Reactions))
	for i := len(view.Reactions) - 1; i >= 0; i-- {
		r := view.Reactions[i]
		rows = append(rows, []string{
			ReactionLabel(r.Value),
			r.Title,
			strings.Join(r.Categories, ", "),
			RelativeDay(r.Date, now),
		})
	}
	return RenderTable([]string{"", "TITLE", "CATEGORIES", "WHEN"}, rows)
}
