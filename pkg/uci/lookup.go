package uci

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Lookup resolves a dotted path of the form "package",
// "package.section" or "package.section.option" against the resident
// packages. Each level is a linear scan by name; anonymous sections are
// addressable by their generated identifier. Lookup fails with
// ErrNotFound on any unresolved level and ErrInvalid on a malformed
// path.
func (c *Context) Lookup(path string) (Element, error) {
	parts := strings.Split(path, ".")
	if len(parts) < 1 || len(parts) > 3 || parts[0] == "" {
		return nil, c.fail(errors.Wrapf(ErrInvalid, "bad path %q", path))
	}

	pkg, err := c.Get(parts[0])
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return pkg, nil
	}

	sec := pkg.Section(parts[1])
	if sec == nil {
		return nil, c.fail(errors.Wrapf(ErrNotFound, "section %q in package %q", parts[1], parts[0]))
	}
	if len(parts) == 2 {
		return sec, nil
	}

	opt := sec.Option(parts[2])
	if opt == nil {
		return nil, c.fail(errors.Wrapf(ErrNotFound, "option %q in %s.%s", parts[2], parts[0], parts[1]))
	}
	return opt, nil
}

// LookupValue resolves a three-component option path and returns the
// option's value.
func (c *Context) LookupValue(path string) (string, error) {
	e, err := c.Lookup(path)
	if err != nil {
		return "", err
	}
	o, err := ToOption(e)
	if err != nil {
		return "", c.fail(errors.Wrapf(err, "path %q", path))
	}
	return o.Value(), nil
}

// LookupSection resolves a two-component path to a section.
func (c *Context) LookupSection(path string) (*Section, error) {
	e, err := c.Lookup(path)
	if err != nil {
		return nil, err
	}
	s, err := ToSection(e)
	if err != nil {
		return nil, c.fail(errors.Wrapf(err, "path %q", path))
	}
	return s, nil
}
