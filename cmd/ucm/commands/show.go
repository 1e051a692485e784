package commands

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ucm/pkg/uci"
)

// showFormat holds the value of the --format flag.
var showFormat string

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "",
		"output format: text, json, yaml, toml (default from tool config)")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [<package>[.<section>[.<option>]]]",
	Short: "List configuration as dotted assignments",
	Long: `Show prints the effective configuration (staged changes included) as
dotted assignments, optionally narrowed to one package, section or
option. Alternate formats render the same tree as a nested document.`,
	Example: `  ucm show
  ucm show network.lan
  ucm show network --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

// renderSection is the section shape used by the structured formats.
type renderSection struct {
	Type    string            `json:"type" yaml:"type" toml:"type"`
	Options map[string]string `json:"options" yaml:"options" toml:"options"`
}

func runShow(cmd *cobra.Command, args []string) error {
	var parts []string
	if len(args) == 1 {
		var err error
		if parts, err = splitPath(args[0], 1, 3); err != nil {
			return err
		}
	}

	names, err := effectiveNames()
	if err != nil {
		return err
	}
	if len(parts) > 0 {
		names = []string{parts[0]}
	}

	ctx := newContext()
	var pkgs []*uci.Package
	for _, name := range names {
		p, err := loadEffective(ctx, name)
		if err != nil {
			return err
		}
		pkgs = append(pkgs, p)
	}

	format := showFormat
	if format == "" {
		format = cfg.Format
	}

	switch format {
	case "", "text":
		return showText(cmd, pkgs, parts)
	case "json", "yaml", "toml":
		return showStructured(cmd, pkgs, parts, format)
	default:
		return errors.Newf("unknown format %q", format)
	}
}

func showText(cmd *cobra.Command, pkgs []*uci.Package, parts []string) error {
	out := cmd.OutOrStdout()
	matched := false
	for _, p := range pkgs {
		for _, s := range p.Sections() {
			if len(parts) >= 2 && s.Name() != parts[1] {
				continue
			}
			if len(parts) < 3 {
				fmt.Fprintf(out, "%s.%s=%s\n", p.Name(), s.Name(), s.Type())
				matched = true
			}
			for _, o := range s.Options() {
				if len(parts) == 3 && o.Name() != parts[2] {
					continue
				}
				fmt.Fprintf(out, "%s.%s.%s='%s'\n", p.Name(), s.Name(), o.Name(), o.Value())
				matched = true
			}
		}
	}
	if len(parts) >= 2 && !matched {
		return errors.Wrapf(uci.ErrNotFound, "no match for %q", joinPath(parts))
	}
	return nil
}

func showStructured(cmd *cobra.Command, pkgs []*uci.Package, parts []string, format string) error {
	doc := make(map[string]map[string]renderSection, len(pkgs))
	for _, p := range pkgs {
		sections := make(map[string]renderSection)
		for _, s := range p.Sections() {
			if len(parts) >= 2 && s.Name() != parts[1] {
				continue
			}
			opts := make(map[string]string, len(s.Options()))
			for _, o := range s.Options() {
				if len(parts) == 3 && o.Name() != parts[2] {
					continue
				}
				opts[o.Name()] = o.Value()
			}
			sections[s.Name()] = renderSection{Type: s.Type(), Options: opts}
		}
		doc[p.Name()] = sections
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(doc)
	case "toml":
		data, err = toml.Marshal(doc)
	}
	if err != nil {
		return errors.Wrapf(err, "rendering %s", format)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func joinPath(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += "." + p
	}
	return out
}
