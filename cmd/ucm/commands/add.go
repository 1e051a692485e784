package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <package> <section-type>",
	Short: "Stage a new anonymous section",
	Long: `Add appends an anonymous section of the given type to the package and
stages the result. The generated section identifier is printed so
follow-up set commands can target it.`,
	Example: `  ucm add firewall rule
  ucm set firewall.cfg0.action=accept`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := newContext()
	p, err := loadEffective(ctx, args[0])
	if err != nil {
		return err
	}

	sec, err := p.AddSection(args[1], "")
	if err != nil {
		return err
	}

	if err := stage(ctx, p); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sec.Name())
	return nil
}
