package cmd

import (
	"github.com/spf13/cobra"
)

// stateCmd represents the state command.
var stateCmd = newStateCmd()

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show installed fileset levels and applied fixes",
		Long: `Collect and display the system state the resolver works from: the
installed fileset levels and the interim fixes currently applied, with the
files and filesets each fix owns.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, err := workflow.State(cmd.Context())
			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
