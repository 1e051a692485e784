package commands

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ucm/pkg/uci"
)

func init() {
	rootCmd.AddCommand(changesCmd)
}

var changesCmd = &cobra.Command{
	Use:   "changes [<package>]",
	Short: "Show staged changes against the committed configuration",
	Long: `Changes compares staged package copies with their committed versions
and prints the structural delta: added (+), removed (-) and changed
(~) entries.`,
	Example: `  ucm changes
  ucm changes network`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChanges,
}

var (
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
	changedColor = color.New(color.FgYellow)
)

func runChanges(cmd *cobra.Command, args []string) error {
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
			return nil // nothing staged for this package
		}
		staged = []string{args[0]}
	}

	out := cmd.OutOrStdout()
	for _, name := range staged {
		stagedCtx := uci.New(uci.WithStore(saveStore()))
		newPkg, err := stagedCtx.Load(name)
		if err != nil {
			return err
		}

		var oldPkg *uci.Package
		committedCtx := uci.New(uci.WithStore(confStore()))
		if p, err := committedCtx.Load(name); err == nil {
			oldPkg = p
		} else if !errors.Is(err, uci.ErrNotFound) {
			return err
		}

		printDiff(out, name, oldPkg, newPkg)
	}
	return nil
}

// printDiff emits the structural delta between the committed and
// staged versions of one package. oldPkg may be nil when the package
// only exists staged.
func printDiff(w io.Writer, name string, oldPkg, newPkg *uci.Package) {
	for _, ns := range newPkg.Sections() {
		var oldSec *uci.Section
		if oldPkg != nil {
			oldSec = oldPkg.Section(ns.Name())
		}
		if oldSec == nil {
			addedColor.Fprintf(w, "+%s.%s=%s\n", name, ns.Name(), ns.Type())
			for _, o := range ns.Options() {
				addedColor.Fprintf(w, "+%s.%s.%s='%s'\n", name, ns.Name(), o.Name(), o.Value())
			}
			continue
		}
		for _, o := range ns.Options() {
			old := oldSec.Option(o.Name())
			switch {
			case old == nil:
				addedColor.Fprintf(w, "+%s.%s.%s='%s'\n", name, ns.Name(), o.Name(), o.Value())
			case old.Value() != o.Value():
				changedColor.Fprintf(w, "~%s.%s.%s='%s' -> '%s'\n", name, ns.Name(), o.Name(), old.Value(), o.Value())
			}
		}
		for _, old := range oldSec.Options() {
			if ns.Option(old.Name()) == nil {
				removedColor.Fprintf(w, "-%s.%s.%s\n", name, ns.Name(), old.Name())
			}
		}
	}
	if oldPkg == nil {
		return
	}
	for _, sec := range oldPkg.Sections() {
		if newPkg.Section(sec.Name()) == nil {
			removedColor.Fprintf(w, "-%s.%s\n", name, sec.Name())
		}
	}
}
