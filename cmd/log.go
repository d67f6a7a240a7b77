package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/soloquest/soloquest-cli/internal/application"
	"github.com/soloquest/soloquest-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLogCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Manage the play log",
	}

	cmd.AddCommand(
		newLogAddCmd(app),
		newLogEditCmd(app),
		newLogRemoveCmd(app),
		newLogListCmd(app),
	)

	return cmd
}

func newLogAddCmd(app *app) *cobra.Command {
	var entryType string
	var colorKey string

	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Append a play-log entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.service.AddLogEntry(cmd.Context(), application.AddLogEntryCommand{
				Content:  strings.Join(args, " "),
				Type:     domain.EntryType(entryType),
				ColorKey: domain.ColorKey(colorKey),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added entry %s\n", entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&entryType, "type", string(domain.EntryNormal), "entry type (normal|heading)")
	cmd.Flags().StringVar(&colorKey, "color", string(domain.ColorDefault), "color key")
	return cmd
}

func newLogEditCmd(app *app) *cobra.Command {
	var content string
	var entryType string
	var colorKey string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a play-log entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.service.UpdateLogEntry(cmd.Context(), application.UpdateLogEntryCommand{
				ID:       args[0],
				Content:  content,
				Type:     domain.EntryType(entryType),
				ColorKey: domain.ColorKey(colorKey),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "new entry content")
	cmd.Flags().StringVar(&entryType, "type", string(domain.EntryNormal), "entry type (normal|heading)")
	cmd.Flags().StringVar(&colorKey, "color", string(domain.ColorDefault), "color key")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newLogRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a play-log entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.DeleteLogEntry(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", args[0])
			return nil
		},
	}
}

func newLogListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List play-log entries in chronological order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := app.service.Current()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(state.PlayLogEntries)
			}

			if len(state.PlayLogEntries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Play log is empty.")
				return nil
			}

			for _, entry := range state.PlayLogEntries {
				marker := " "
				if entry.Type == domain.EntryHeading {
					marker = "#"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  %s\n",
					marker, entry.Timestamp.Format("2006-01-02 15:04"), entry.ID, entry.Content)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
