package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/soloquest/soloquest-cli/internal/application"
	"github.com/spf13/cobra"
)

func newTableCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Manage and roll random tables",
	}

	cmd.AddCommand(
		newTableAddCmd(app),
		newTableSetCmd(app),
		newTableRemoveCmd(app),
		newTableListCmd(app),
		newTableRollCmd(app),
		newTableImportCmd(app),
		newTableEntryCmd(app),
	)

	return cmd
}

func newTableAddCmd(app *app) *cobra.Command {
	var diceCommand string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a random table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := app.service.AddTable(cmd.Context(), application.AddTableCommand{
				Name:        args[0],
				DiceCommand: diceCommand,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added table %s\n", table.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&diceCommand, "dice", "", "dice command matched against entry roll values (empty rolls uniformly)")
	return cmd
}

func newTableSetCmd(app *app) *cobra.Command {
	var name string
	var diceCommand string

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Rename a table or change its dice command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.service.UpdateTable(cmd.Context(), application.UpdateTableCommand{
				TableID:     args[0],
				Name:        name,
				DiceCommand: diceCommand,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated table %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "table name")
	cmd.Flags().StringVar(&diceCommand, "dice", "", "dice command")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTableRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.DeleteTable(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted table %s\n", args[0])
			return nil
		},
	}
}

func newTableListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tables and their entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := app.service.Current()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(state.Tables)
			}

			if len(state.Tables) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tables.")
				return nil
			}

			for _, table := range state.Tables {
				dice := "uniform"
				if table.DiceCommand != "" {
					dice = table.DiceCommand
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%s, %d entries)\n", table.ID, table.Name, dice, len(table.Entries))
				for _, entry := range table.Entries {
					if entry.RollValue != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s  [%s] %s\n", entry.ID, entry.RollValue, entry.Value)
						continue
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", entry.ID, entry.Value)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newTableRollCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roll <id>",
		Short: "Roll on a table and log the outcome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := app.service.RollTable(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if outcome.Roll != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (rolled %d): %s\n", outcome.Table.Name, outcome.Roll.Total, outcome.Entry.Value)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", outcome.Table.Name, outcome.Entry.Value)
			return nil
		},
	}
}

func newTableImportCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <id> <csv-file>",
		Short: "Import table entries from a CSV file (value[,rollValue] per row)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open csv file: %w", err)
			}
			defer func() { _ = file.Close() }()

			reader := csv.NewReader(file)
			reader.FieldsPerRecord = -1
			records, err := reader.ReadAll()
			if err != nil {
				return fmt.Errorf("parse csv file: %w", err)
			}

			rows := make([]application.TableEntryCommand, 0, len(records))
			for _, record := range records {
				row := application.TableEntryCommand{TableID: args[0]}
				if len(record) > 0 {
					row.Value = record[0]
				}
				if len(record) > 1 {
					row.RollValue = record[1]
				}
				rows = append(rows, row)
			}

			entries, err := app.service.ImportTableEntries(cmd.Context(), args[0], rows)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries\n", len(entries))
			return nil
		},
	}

	return cmd
}

func newTableEntryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage table entries",
	}

	cmd.AddCommand(
		newTableEntryAddCmd(app),
		newTableEntrySetCmd(app),
		newTableEntryRemoveCmd(app),
	)

	return cmd
}

func newTableEntryAddCmd(app *app) *cobra.Command {
	var rollValue string

	cmd := &cobra.Command{
		Use:   "add <table-id> <value>",
		Short: "Append an entry to a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.service.AddTableEntry(cmd.Context(), application.TableEntryCommand{
				TableID:   args[0],
				Value:     args[1],
				RollValue: rollValue,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added entry %s\n", entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&rollValue, "roll-value", "", "total or range this entry matches (required on dice-command tables)")
	return cmd
}

func newTableEntrySetCmd(app *app) *cobra.Command {
	var value string
	var rollValue string

	cmd := &cobra.Command{
		Use:   "set <table-id> <entry-id>",
		Short: "Edit a table entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.service.UpdateTableEntry(cmd.Context(), application.TableEntryCommand{
				TableID:   args[0],
				EntryID:   args[1],
				Value:     value,
				RollValue: rollValue,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "entry value")
	cmd.Flags().StringVar(&rollValue, "roll-value", "", "total or range this entry matches")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newTableEntryRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <table-id> <entry-id>",
		Short: "Delete a table entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.DeleteTableEntry(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", args[1])
			return nil
		},
	}
}
