package cli

import (
	"fmt"

	"github.com/alexanderramin/outings/internal/app"
	"github.com/alexanderramin/outings/internal/cli/formatter"
	"github.com/alexanderramin/outings/internal/domain"
	"github.com/spf13/cobra"
)

func newReactCmd(a *App) *cobra.Command {
	var rec domain.ActivityRecord
	var up, down bool
	var reasons []string

	cmd := &cobra.Command{
		Use:   "react",
		Short: "Record a thumbs-up or thumbs-down for a result",
		Example: `  outings react --title "Lion Feeding" --description "Keepers feed the zoo lions." --up
  outings react --title "El Sol" --up --reason authenticity --reason menu`,
		RunE: func(cmd *cobra.Command, args []string) error {
			value := domain.ReactionUp
			if down {
				value = domain.ReactionDown
			}

			resp, err := a.Feedback.React(cmd.Context(), app.ReactRequest{
				Activity: rec,
				Reaction: value,
				Reasons:  reasons,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatReactResponse(resp, a.describe))
			if len(resp.Matching) > 0 {
				fmt.Fprintln(out, formatter.MatchBadge(resp.Matching, a.describe))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rec.Title, "title", "", "Result title")
	cmd.Flags().StringVar(&rec.Description, "description", "", "Result description, used to infer categories")
	cmd.Flags().StringVar(&rec.Emoji, "emoji", "", "Result emoji")
	cmd.Flags().StringVar(&rec.Location, "location", "", "Venue name")
	cmd.Flags().Float64Var(&rec.Distance, "distance", 0, "Distance in miles")
	cmd.Flags().BoolVar(&up, "up", false, "Thumbs-up")
	cmd.Flags().BoolVar(&down, "down", false, "Thumbs-down")
	cmd.Flags().StringSliceVar(&reasons, "reason", nil, "Explicit reason for a thumbs-up (repeatable)")
	_ = cmd.MarkFlagRequired("title")
	cmd.MarkFlagsMutuallyExclusive("up", "down")
	cmd.MarkFlagsOneRequired("up", "down")

	return cmd
}
