package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ucm/internal/logging"
	"github.com/thoreinstein/ucm/pkg/uci"
)

func init() {
	rootCmd.AddCommand(commitCmd)
}

var commitCmd = &cobra.Command{
	Use:   "commit [<package>]",
	Short: "Promote staged changes into the config directory",
	Long: `Commit moves staged package files into the confdir, replacing the
committed versions atomically. Without an argument every staged
package is committed. Each staged file is re-parsed before promotion
so a corrupted staging file can never clobber a committed config.`,
	Example: `  ucm commit network
  ucm commit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCommit,
}

func runCommit(cmd *cobra.Command, args []string) error {
	staged, err := saveStore().List()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		found := false
		for _, n := range staged {
			if n == args[0] {
				found = true
				break
			}
		}
		if !found {
			return errors.Wrapf(uci.ErrNotFound, "no staged changes for package %q", args[0])
		}
		staged = []string{args[0]}
	}

	log := logging.FromContext(cmd.Context())
	for _, name := range staged {
		if err := commitOne(name); err != nil {
			return errors.Wrapf(err, "committing %q", name)
		}
		log.Info("committed package", "package", name)
	}
	return nil
}

// commitOne validates and promotes a single staged package.
func commitOne(name string) error {
	// Parse the staged file first; only well-formed text is promoted.
	ctx := uci.New(uci.WithStore(saveStore()))
	p, err := ctx.Load(name)
	if err != nil {
		return err
	}

	w, err := confStore().Create(name)
	if err != nil {
		return err
	}
	if err := ctx.Export(w, p); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	err = saveStore().Remove(name)
	if errors.Is(err, uci.ErrNotFound) {
		return nil
	}
	return err
}
