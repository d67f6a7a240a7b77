package cmd

import (
	"fmt"

	"github.com/soloquest/soloquest-cli/internal/application"
	"github.com/spf13/cobra"
)

func newSheetCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Manage the character sheet",
	}

	cmd.AddCommand(
		newSheetShowCmd(app),
		newSheetNameCmd(app),
		newSheetStatsCmd(app),
		newSheetImageCmd(app),
		newSheetLabelCmd(app),
		newSheetFieldCmd(app),
	)

	return cmd
}

func newSheetShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the character sheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sheet := app.service.Current().CharacterSheet
			name := sheet.Name
			if name == "" {
				name = "(unnamed)"
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s:\n%s\n", sheet.StatsLabel, sheet.Stats)
			for _, field := range sheet.CustomFields {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s: %s\n", field.ID, field.FieldName, field.FieldValue)
			}
			return nil
		},
	}
}

func newSheetNameCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "name <name>",
		Short: "Set the character name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.service.SetCharacterName(cmd.Context(), args[0])
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Character name updated")
			return nil
		},
	}
}

func newSheetStatsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <text>",
		Short: "Replace the stats block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.service.SetCharacterStats(cmd.Context(), args[0])
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Stats updated")
			return nil
		},
	}
}

func newSheetImageCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "image <reference>",
		Short: "Set the character image reference (empty clears it)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image := ""
			if len(args) == 1 {
				image = args[0]
			}
			app.service.SetCharacterImage(cmd.Context(), image)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Image updated")
			return nil
		},
	}
}

func newSheetLabelCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "label <label>",
		Short: "Override the stats caption (empty restores the default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := ""
			if len(args) == 1 {
				label = args[0]
			}
			app.service.SetStatsLabel(cmd.Context(), label)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Stats label updated")
			return nil
		},
	}
}

func newSheetFieldCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Manage custom sheet fields",
	}

	cmd.AddCommand(
		newSheetFieldAddCmd(app),
		newSheetFieldSetCmd(app),
		newSheetFieldRemoveCmd(app),
	)

	return cmd
}

func newSheetFieldAddCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name> [value]",
		Short: "Add a custom field",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 2 {
				value = args[1]
			}
			field, err := app.service.AddCustomField(cmd.Context(), application.CustomFieldCommand{
				FieldName:  args[0],
				FieldValue: value,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added field %s\n", field.ID)
			return nil
		},
	}

	return cmd
}

func newSheetFieldSetCmd(app *app) *cobra.Command {
	var name string
	var value string

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Edit a custom field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.service.UpdateCustomField(cmd.Context(), application.CustomFieldCommand{
				FieldID:    args[0],
				FieldName:  name,
				FieldValue: value,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated field %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "field name")
	cmd.Flags().StringVar(&value, "value", "", "field value")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSheetFieldRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a custom field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.DeleteCustomField(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted field %s\n", args[0])
			return nil
		},
	}
}
