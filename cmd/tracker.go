package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/soloquest/soloquest-cli/internal/application"
	"github.com/spf13/cobra"
)

func newTrackerCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Manage numeric resource trackers",
	}

	cmd.AddCommand(
		newTrackerAddCmd(app),
		newTrackerSetCmd(app),
		newTrackerRemoveCmd(app),
		newTrackerListCmd(app),
		newTrackerHistoryCmd(app),
	)

	return cmd
}

func newTrackerAddCmd(app *app) *cobra.Command {
	var initial float64

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a resource tracker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := app.service.AddTracker(cmd.Context(), args[0], initial)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added tracker %s\n", tracker.ID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&initial, "value", 0, "initial value")
	return cmd
}

func newTrackerSetCmd(app *app) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "set <id> <value>",
		Short: "Set a tracker to a new value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}

			err = app.service.AdjustTracker(cmd.Context(), application.AdjustTrackerCommand{
				TrackerID: args[0],
				NewValue:  value,
				Reason:    reason,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tracker %s set to %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "reason recorded alongside the change")
	return cmd
}

func newTrackerRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a tracker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.DeleteTracker(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted tracker %s\n", args[0])
			return nil
		},
	}
}

func newTrackerListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trackers and their current values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			trackers := app.service.Current().ResourceTrackers
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(trackers)
			}

			if len(trackers) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No trackers.")
				return nil
			}

			for _, tracker := range trackers {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s = %g\n", tracker.ID, tracker.Name, tracker.Value)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newTrackerHistoryCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show a tracker's change history, most recent first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, tracker := range app.service.Current().ResourceTrackers {
				if tracker.ID != args[0] {
					continue
				}
				if len(tracker.History) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes recorded.")
					return nil
				}
				for _, change := range tracker.History {
					line := fmt.Sprintf("%s  %g -> %g (%+g)",
						change.Timestamp.Format("2006-01-02 15:04"), change.PreviousValue, change.NewValue, change.Change)
					if change.Reason != "" {
						line = fmt.Sprintf("%s  %s", line, change.Reason)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			}
			return fmt.Errorf("tracker %q not found", args[0])
		},
	}
}
