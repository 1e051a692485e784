package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively pick an option with fuzzy search",
	Long: `Browse opens a fuzzy finder over every option path in the effective
configuration and prints the selected path and value.`,
	Example: `  ucm browse`,
	Args:    cobra.NoArgs,
	RunE:    runBrowse,
}

// browseEntry is one selectable row in the finder.
type browseEntry struct {
	path    string
	value   string
	secType string
}

func runBrowse(cmd *cobra.Command, args []string) error {
	names, err := effectiveNames()
	if err != nil {
		return err
	}

	ctx := newContext()
	var entries []browseEntry
	for _, name := range names {
		p, err := loadEffective(ctx, name)
		if err != nil {
			return err
		}
		for _, s := range p.Sections() {
			for _, o := range s.Options() {
				entries = append(entries, browseEntry{
					path:    fmt.Sprintf("%s.%s.%s", p.Name(), s.Name(), o.Name()),
					value:   o.Value(),
					secType: s.Type(),
				})
			}
		}
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No options found.")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			return entries[i].path
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			e := entries[i]
			return fmt.Sprintf("Path: %s\nSection type: %s\n\nValue:\n%s", e.path, e.secType, e.value)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive selection failed")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s='%s'\n", entries[idx].path, entries[idx].value)
	return nil
}
