package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/outings/internal/app"
	"github.com/alexanderramin/outings/internal/cli/formatter"
	"github.com/alexanderramin/outings/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// searchOptions are the flags shared by search and prompt.
type searchOptions struct {
	city         string
	ages         string
	date         string
	timeOfDay    string
	availability string
	distance     float64
	prefs        string
	dining       bool
	context      string
}

func (o *searchOptions) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.city, "city", "", "City to search near")
	fs.StringVar(&o.ages, "ages", "", `Kids' ages, e.g. "4, 7"`)
	fs.StringVar(&o.date, "date", "", "Date in YYYY-MM-DD format (default next Saturday)")
	fs.StringVar(&o.timeOfDay, "time", domain.DefaultTimeOfDay, "Time of day, e.g. morning, afternoon, evening")
	fs.StringVar(&o.availability, "availability", "", "Free-form availability; overrides --date and --time")
	fs.Float64Var(&o.distance, "distance", domain.DefaultMaxDistance, "Maximum driving distance in miles")
	fs.StringVar(&o.prefs, "prefs", "", "Other preferences, or the cuisine when searching restaurants")
	fs.BoolVar(&o.dining, "dining", false, "Search restaurants instead of activities")
	fs.StringVar(&o.context, "context", "", "Preference context sent instead of the learned summary")
}

func markSearchRequired(cmd *cobra.Command) {
	_ = cmd.MarkFlagRequired("city")
	_ = cmd.MarkFlagRequired("ages")
}

func (o *searchOptions) request(a *App, fs *pflag.FlagSet) app.RecommendRequest {
	req := app.NewRecommendRequest(o.city, o.ages)
	if o.dining {
		req.EventType = string(domain.EventDining)
	}
	req.Availability = o.availability
	req.Date = o.date
	if req.Date == "" && req.Availability == "" {
		req.Date = domain.NextSaturday(a.now())
	}
	req.TimeOfDay = o.timeOfDay
	req.MaxDistance = o.distance
	req.Preferences = o.prefs
	if fs.Changed("context") {
		ctx := o.context
		req.PreferenceContext = &ctx
	}
	return req
}

func newSearchCmd(a *App) *cobra.Command {
	var opts searchOptions
	var react bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find five family activities or restaurants",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			req := opts.request(a, cmd.Flags())

			stop := func() {}
			if a.interactive() {
				msg := "Finding activities..."
				if opts.dining {
					msg = "Finding restaurants..."
				}
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), msg)
			}
			resp, err := a.Recommend.Recommend(ctx, req)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(out, formatter.FormatRecommendations(resp, a.describe))

			if react || (a.interactive() && !cmd.Flags().Changed("react")) {
				return rateResults(cmd, a, resp)
			}
			return nil
		},
	}

	opts.bind(cmd.Flags())
	cmd.Flags().BoolVar(&react, "react", false, "Rate each result after the search")
	markSearchRequired(cmd)

	return cmd
}

func newPromptCmd(a *App) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the request a search would send, without sending it",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := a.Recommend.PreviewPrompt(cmd.Context(), opts.request(a, cmd.Flags()))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}

	opts.bind(cmd.Flags())
	markSearchRequired(cmd)

	return cmd
}

// rateResults walks the results asking for a reaction to each one.
func rateResults(cmd *cobra.Command, a *App, resp *app.RecommendResponse) error {
	out := cmd.OutOrStdout()
	ask := a.askReaction()

	var reasons []string
	if resp.EventType == domain.EventDining && a.Vocab != nil {
		reasons = a.Vocab.Reasons()
	}

	rated := 0
	for _, activity := range resp.Activities {
		answer, err := ask(activity, reasons)
		if err != nil {
			return fmt.Errorf("reading reaction: %w", err)
		}
		if answer.Stop {
			break
		}
		if answer.Value == domain.ReactionNone {
			continue
		}

		result, err := a.Feedback.React(cmd.Context(), app.ReactRequest{
			Activity: activity.ActivityRecord,
			Reaction: answer.Value,
			Reasons:  answer.Reasons,
		})
		if err != nil {
			var re *app.RecommendError
			if errors.As(err, &re) {
				fmt.Fprintln(out, FormatError(err))
				continue
			}
			return err
		}
		rated++
		fmt.Fprint(out, formatter.FormatReactResponse(result, a.describe))
	}

	if rated > 0 {
		fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Saved %d %s.", rated, plural(rated, "reaction"))))
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
