package commands

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// exportOutput holds the value of the export -o flag.
var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [<package>]",
	Short: "Write packages in the canonical text format",
	Long: `Export serializes one package, or every available package, in the
canonical quoted text format. The output re-imports to a structurally
identical tree.`,
	Example: `  ucm export network
  ucm export -o backup.uci`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	names, err := effectiveNames()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		names = []string{args[0]}
	}

	ctx := newContext()
	for _, name := range names {
		if _, err := loadEffective(ctx, name); err != nil {
			return err
		}
	}

	var out io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return errors.Wrap(err, "creating output file")
		}
		defer f.Close()
		out = f
	}

	return ctx.Export(out, nil)
}
