package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ucm/pkg/uci"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <package>.<section>[.<option>]",
	Short: "Print an option value or a section type",
	Long: `Get resolves a dotted path against the loaded configuration.

A three-component path prints the option value; a two-component path
prints the section type. Staged changes take precedence over committed
files.`,
	Example: `  # Option value
  ucm get network.lan.ifname

  # Section type
  ucm get network.lan`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	parts, err := splitPath(args[0], 2, 3)
	if err != nil {
		return err
	}

	ctx := newContext()
	if _, err := loadEffective(ctx, parts[0]); err != nil {
		return err
	}

	e, err := ctx.Lookup(args[0])
	if err != nil {
		return err
	}

	switch e := e.(type) {
	case *uci.Option:
		fmt.Fprintln(cmd.OutOrStdout(), e.Value())
	case *uci.Section:
		fmt.Fprintln(cmd.OutOrStdout(), e.Type())
	}
	return nil
}
