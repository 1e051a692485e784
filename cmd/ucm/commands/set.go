package commands

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ucm/internal/logging"
)

func init() {
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set <package>.<section>.<option>=<value>",
	Short: "Stage an option write",
	Long: `Set creates or overwrites an option and stages the resulting package
in the savedir. The committed file is untouched until commit.`,
	Example: `  ucm set network.lan.ifname=eth1
  ucm set firewall.wan.input='ACCEPT'`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	path, value, ok := strings.Cut(args[0], "=")
	if !ok {
		return errors.Newf("bad assignment %q: want <package>.<section>.<option>=<value>", args[0])
	}
	parts, err := splitPath(path, 3, 3)
	if err != nil {
		return err
	}

	ctx := newContext()
	p, err := loadEffective(ctx, parts[0])
	if err != nil {
		return err
	}

	sec := p.Section(parts[1])
	if sec == nil {
		return errors.Newf("section %q not found in package %q", parts[1], parts[0])
	}
	if _, err := sec.Set(parts[2], value); err != nil {
		return err
	}

	if err := stage(ctx, p); err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Info("staged option write",
		"path", path, "value", value)
	return nil
}
