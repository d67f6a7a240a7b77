package cmd

import "github.com/spf13/cobra"

func Execute() error {
	rootCmd, cleanup := newRootCmd()
	defer cleanup()
	return rootCmd.Execute()
}

// newRootCmd builds the command tree. The returned cleanup releases the
// storage backend and must run after Execute, even on error.
func newRootCmd() (*cobra.Command, func()) {
	rootCmd := &cobra.Command{
		Use:           "sq",
		Short:         "soloquest (sq): track a solo tabletop-RPG session from the terminal",
		Long:          "sq keeps one play session per profile: a play log, a character sheet, random tables, resource trackers, and dice history, with bounded undo/redo and local persistence.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, cleanup, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, func() {}
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return app.service.Open(cmd.Context())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
		newStatusCmd(app),
		newLogCmd(app),
		newRollCmd(app),
		newTableCmd(app),
		newTrackerCmd(app),
		newSheetCmd(app),
		newSessionCmd(app),
		newGameDataCmd(app),
		newTitleCmd(app),
		newThemeCmd(app),
		newUndoCmd(app),
		newRedoCmd(app),
	)

	return rootCmd, cleanup
}
