package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configsCmd)
}

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "List available configuration packages",
	Long: `Configs lists the package names present in the confdir. Names with
staged, uncommitted changes are marked with an asterisk.`,
	Example: `  ucm configs`,
	Args:    cobra.NoArgs,
	RunE:    runConfigs,
}

func runConfigs(cmd *cobra.Command, args []string) error {
	names, err := effectiveNames()
	if err != nil {
		return err
	}

	staged, err := saveStore().List()
	if err != nil {
		return err
	}
	stagedSet := make(map[string]bool, len(staged))
	for _, n := range staged {
		stagedSet[n] = true
	}

	out := cmd.OutOrStdout()
	for _, n := range names {
		if stagedSet[n] {
			fmt.Fprintf(out, "%s *\n", n)
		} else {
			fmt.Fprintln(out, n)
		}
	}
	return nil
}
