package commands

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ucm/internal/logging"
	"github.com/thoreinstein/ucm/pkg/fileutil"
	"github.com/thoreinstein/ucm/pkg/uci"
)

// importInput holds the value of the import -i flag.
var importInput string

func init() {
	importCmd.Flags().StringVarP(&importInput, "input", "i", "",
		"read from file instead of stdin")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <package>",
	Short: "Parse configuration text and stage it as a package",
	Long: `Import parses configuration text (from stdin or a file) and stages the
resulting package under the given name. Malformed input is rejected
with a line/byte diagnostic and stages nothing.`,
	Example: `  ucm import network -i network.uci
  cat dhcp.uci | ucm import dhcp`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := newContext()

	var (
		pkg *uci.Package
		err error
	)
	if importInput != "" {
		data, rerr := fileutil.ReadFileWithLimit(importInput)
		if rerr != nil {
			return rerr
		}
		pkg, err = ctx.Import(bytes.NewReader(data), args[0])
	} else {
		pkg, err = ctx.Import(cmd.InOrStdin(), args[0])
	}
	if err != nil {
		return err
	}

	if err := stage(ctx, pkg); err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Info("staged import", "package", pkg.Name())
	return nil
}
