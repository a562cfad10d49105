package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/outings/internal/app"
	"github.com/alexanderramin/outings/internal/cli/formatter"
	"github.com/alexanderramin/outings/internal/taxonomy"
	"github.com/spf13/cobra"
)

// App holds the use cases and environment hooks the commands run against.
type App struct {
	Recommend app.RecommendUseCase
	Feedback  app.FeedbackUseCase
	Vocab     *taxonomy.Vocabulary

	// Serve runs the HTTP endpoint until ctx is cancelled.
	Serve       func(ctx context.Context, addr string) error
	DefaultAddr string

	IsInteractive func() bool
	Now           func() time.Time

	// AskReaction collects a rating for one result. Nil uses the huh form.
	AskReaction ReactionPrompter
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) askReaction() ReactionPrompter {
	if a.AskReaction != nil {
		return a.AskReaction
	}
	return huhReactionPrompter
}

func (a *App) describe(tag string) string {
	if a.Vocab == nil {
		return tag
	}
	return a.Vocab.Describe(tag)
}

// NewRootCmd creates the top-level "outings" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "outings",
		Short:         "Family activity and restaurant finder that learns what you like",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSearchCmd(app),
		newPromptCmd(app),
		newReactCmd(app),
		newPrefsCmd(app),
		newServeCmd(app),
	)

	return root
}

// FormatError renders a command failure. Use-case errors show their hint.
func FormatError(err error) string {
	var re *app.RecommendError
	if errors.As(err, &re) {
		msg := formatter.StyleRed.Render("Something went wrong: ") + re.Message
		if re.Hint != "" {
			msg += "\n" + formatter.Dim(re.Hint)
		}
		return msg
	}
	return fmt.Sprintf("%s %v", formatter.StyleRed.Render("Error:"), err)
}
