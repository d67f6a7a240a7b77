package cmd

import (
	"encoding/json"
	"fmt"

	statusadapter "github.com/soloquest/soloquest-cli/internal/adapters/render/status"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var maxRolls int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a session overview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			overview := app.service.Overview()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(overview)
			}

			rendered, err := app.overviewRenderer(overview, statusadapter.RenderOptions{
				Now:      app.now(),
				MaxRolls: maxRolls,
			})
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.Flags().IntVar(&maxRolls, "rolls", 5, "number of recent rolls to show")
	return cmd
}
