package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newGameDataCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gamedata",
		Short: "Load and inspect game-data packages (.srgd)",
	}

	cmd.AddCommand(
		newGameDataLoadCmd(app),
		newGameDataClearCmd(app),
		newGameDataInfoCmd(app),
	)

	return cmd
}

func newGameDataLoadCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <path>",
		Short: "Load a game-data package into the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read game data package: %w", err)
			}

			pkg, err := app.service.LoadGameDataJSON(cmd.Context(), data)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s\n", pkg.Manifest.GameTitle)
			return nil
		},
	}
}

func newGameDataClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Unload the game-data package and reset template-derived fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.service.ClearGameData(cmd.Context())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Game data cleared")
			return nil
		},
	}
}

func newGameDataInfoCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the loaded game-data package",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := app.service.Current()
			if state.LoadedGameData == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No game data loaded.")
				return nil
			}

			manifest := state.LoadedGameData.Manifest
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", manifest.GameTitle)
			if manifest.Author != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "author: %s\n", manifest.Author)
			}
			if manifest.Version != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "version: %s\n", manifest.Version)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "load id: %s\n", state.GameDataLoadID)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tables: %d, tracker templates: %d, rulebook sections: %d\n",
				len(state.LoadedGameData.RandomTables),
				len(state.LoadedGameData.ResourceTrackers),
				len(state.LoadedGameData.RulebookSections))
			return nil
		},
	}
}
