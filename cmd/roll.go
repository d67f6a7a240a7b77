package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRollCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roll <expression>",
		Short: "Roll dice (e.g. 2d6+1) and record the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roll, err := app.service.RollDice(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rolls := make([]string, len(roll.IndividualRolls))
			for i, v := range roll.IndividualRolls {
				rolls[i] = fmt.Sprintf("%d", v)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %d [%s]\n", roll.Command, roll.Total, strings.Join(rolls, ", "))
			return nil
		},
	}
}
