package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ucm/internal/logging"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:     "delete <package>.<section>[.<option>]",
	Aliases: []string{"del"},
	Short:   "Stage a section or option removal",
	Long: `Delete removes a section (with all its options) or a single option and
stages the resulting package.`,
	Example: `  ucm delete network.lan.ifname
  ucm delete firewall.cfg0`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	parts, err := splitPath(args[0], 2, 3)
	if err != nil {
		return err
	}

	ctx := newContext()
	p, err := loadEffective(ctx, parts[0])
	if err != nil {
		return err
	}

	if len(parts) == 2 {
		if err := p.DeleteSection(parts[1]); err != nil {
			return err
		}
	} else {
		sec := p.Section(parts[1])
		if sec == nil {
			return errors.Newf("section %q not found in package %q", parts[1], parts[0])
		}
		if err := sec.Delete(parts[2]); err != nil {
			return err
		}
	}

	if err := stage(ctx, p); err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Info("staged removal", "path", args[0])
	return nil
}
