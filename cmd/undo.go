package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUndoCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Step the session one change back",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.service.Undo(cmd.Context()) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Nothing to undo.")
				return nil
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Undone.")
			return nil
		},
	}
}

func newRedoCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Step the session one change forward",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.service.Redo(cmd.Context()) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Nothing to redo.")
				return nil
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Redone.")
			return nil
		},
	}
}
