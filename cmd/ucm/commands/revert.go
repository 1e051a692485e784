package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ucm/internal/logging"
	"github.com/thoreinstein/ucm/pkg/uci"
)

func init() {
	rootCmd.AddCommand(revertCmd)
}

var revertCmd = &cobra.Command{
	Use:   "revert <package>",
	Short: "Discard staged changes for a package",
	Long: `Revert drops the staged copy of a package, restoring the committed
file as the effective configuration. It fails if the package has no
staged changes.`,
	Example: `  ucm revert network`,
	Args:    cobra.ExactArgs(1),
	RunE:    runRevert,
}

func runRevert(cmd *cobra.Command, args []string) error {
	err := saveStore().Remove(args[0])
	if errors.Is(err, uci.ErrNotFound) {
		return errors.Wrapf(uci.ErrNotFound, "no staged changes for package %q", args[0])
	}
	if err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Info("reverted package", "package", args[0])
	return nil
}
