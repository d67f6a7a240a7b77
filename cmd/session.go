package cmd

import (
	"fmt"
	"os"

	"github.com/soloquest/soloquest-cli/internal/adapters/export/htmlexport"
	"github.com/soloquest/soloquest-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Save, load, reset, and export the session",
	}

	cmd.AddCommand(
		newSessionSaveCmd(app),
		newSessionLoadCmd(app),
		newSessionResetCmd(app),
		newSessionExportCmd(app),
	)

	return cmd
}

func newSessionSaveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save <path>",
		Short: "Write the current session to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.service.ExportSessionJSON()
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], data, 0o600); err != nil {
				return fmt.Errorf("write session file: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved session to %s\n", args[0])
			return nil
		},
	}
}

func newSessionLoadCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <path>",
		Short: "Replace the session with a session file (starts a fresh history)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read session file: %w", err)
			}

			state, err := app.service.LoadSessionJSON(cmd.Context(), data)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded session %s (%d log entries)\n", state.SessionID, len(state.PlayLogEntries))
			return nil
		},
	}
}

func newSessionResetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard all state and history and start a fresh session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := app.service.ResetSession(cmd.Context())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Started fresh session %s\n", state.SessionID)
			return nil
		},
	}
}

func newSessionExportCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Render the play log to a standalone HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExportSpinner(cmd.Context(), cmd.OutOrStdout(), func() error {
				data, renderErr := htmlexport.Render(app.service.Current())
				if renderErr != nil {
					return renderErr
				}
				if writeErr := os.WriteFile(args[0], data, 0o600); writeErr != nil {
					return fmt.Errorf("write export file: %w", writeErr)
				}
				return nil
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported play log to %s\n", args[0])
			return nil
		},
	}
}

func newTitleCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "title <title>",
		Short: "Rename the play log (empty restores the default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			app.service.SetPlayLogTitle(cmd.Context(), title)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Play log title: %s\n", app.service.Current().PlayLogTitle)
			return nil
		},
	}
}

func newThemeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theme <theme>",
		Short: "Switch the display theme (dark|light|parchment|midnight)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.SetTheme(cmd.Context(), domain.Theme(args[0])); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", args[0])
			return nil
		},
	}
}
