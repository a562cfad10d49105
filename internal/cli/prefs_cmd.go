package cli

import (
	"fmt"

	"github.com/alexanderramin/outings/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newPrefsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prefs",
		Aliases: []string{"preferences"},
		Short:   "Inspect or reset what has been learned",
	}

	cmd.AddCommand(
		newPrefsShowCmd(a),
		newPrefsListCmd(a),
		newPrefsClearCmd(a),
	)

	return cmd
}

func newPrefsShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the learned summary and category counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := a.Feedback.Preferences(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPreferences(view, a.describe))
			return nil
		},
	}
}

func newPrefsListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every stored reaction, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := a.Feedback.Preferences(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReactionList(view, a.now()))
			return nil
		},
	}
}

func newPrefsClearCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every stored reaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes {
				if !a.interactive() {
					return fmt.Errorf("refusing to clear preferences without --yes")
				}
				confirmed := false
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title("Forget every reaction?").
						Description("The learned summary will be empty until you rate more results.").
						Value(&confirmed),
				)).WithTheme(outingsHuhTheme()).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(out, formatter.Dim("Nothing cleared."))
					return nil
				}
			}

			removed := len(a.Feedback.Preferences(cmd.Context()).Reactions)
			if err := a.Feedback.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %d %s.\n", formatter.StyleYellow.Render("Cleared"), removed, plural(removed, "reaction"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
