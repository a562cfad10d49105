package cli

import (
	"fmt"

	"github.com/alexanderramin/outings/internal/app"
	"github.com/alexanderramin/outings/internal/cli/formatter"
	"github.com/alexanderramin/outings/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ReactionAnswer is one rating collected from the user. Value is
// ReactionNone when the result was skipped.
type ReactionAnswer struct {
	Value   domain.ReactionValue
	Reasons []string
	Stop    bool
}

// ReactionPrompter asks how the family felt about one result. reasons is
// empty when explicit reasons do not apply.
type ReactionPrompter func(a app.RecommendedActivity, reasons []string) (ReactionAnswer, error)

const (
	choiceUp   = "up"
	choiceDown = "down"
	choiceSkip = "skip"
	choiceStop = "stop"
)

func outingsHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// reactionForm builds the rating form for one result. The reasons group is
// only shown after a thumbs-up.
func reactionForm(a app.RecommendedActivity, reasons []string, choice *string, picked *[]string) *huh.Form {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("How was %s?", a.Title)).
				Description(a.Location).
				Options(
					huh.NewOption("👍 Thumbs up", choiceUp),
					huh.NewOption("👎 Thumbs down", choiceDown),
					huh.NewOption("Skip this one", choiceSkip),
					huh.NewOption("Done rating", choiceStop),
				).
				Value(choice),
		),
	}

	if len(reasons) > 0 {
		options := make([]huh.Option[string], 0, len(reasons))
		for _, r := range reasons {
			options = append(options, huh.NewOption(r, r))
		}
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("What did you like?").
				Description("Optional. Leave empty to infer from the description.").
				Options(options...).
				Value(picked),
		).WithHideFunc(func() bool { return *choice != choiceUp }))
	}

	return huh.NewForm(groups...).WithTheme(outingsHuhTheme()).WithShowHelp(false)
}

func huhReactionPrompter(a app.RecommendedActivity, reasons []string) (ReactionAnswer, error) {
	choice := choiceSkip
	var picked []string
	if err := reactionForm(a, reasons, &choice, &picked).Run(); err != nil {
		return ReactionAnswer{}, err
	}
	return answerFor(choice, picked), nil
}

func answerFor(choice string, picked []string) ReactionAnswer {
	switch choice {
	case choiceUp:
		return ReactionAnswer{Value: domain.ReactionUp, Reasons: picked}
	case choiceDown:
		return ReactionAnswer{Value: domain.ReactionDown}
	case choiceStop:
		return ReactionAnswer{Stop: true}
	default:
		return ReactionAnswer{}
	}
}
