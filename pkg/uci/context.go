package uci

import (
	"github.com/cockroachdb/errors"
)

// Context owns the set of loaded packages. It is the entry point for
// loading, importing, exporting and looking up configuration data.
//
// A Context must not be mutated from multiple goroutines; see the
// package documentation.
type Context struct {
	store Store

	// Resident packages in insertion order. Package names are unique;
	// loading a name again replaces the prior instance in place.
	packages []*Package

	lastErr error
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithStore sets the backing store used by Load, Configs and tooling
// that persists packages by name.
func WithStore(s Store) ContextOption {
	return func(c *Context) {
		c.store = s
	}
}

// New creates an empty Context.
func New(opts ...ContextOption) *Context {
	c := &Context{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Free releases every package owned by the context, including journals.
// The context itself remains usable as an empty context.
func (c *Context) Free() {
	for _, p := range c.packages {
		p.ctx = nil
	}
	c.packages = nil
	c.lastErr = nil
}

// LastError returns the error recorded by the most recent failing
// public operation, or nil if the last operation succeeded.
func (c *Context) LastError() error {
	return c.lastErr
}

func (c *Context) fail(err error) error {
	c.lastErr = err
	return err
}

// Names returns the names of the resident packages in insertion order.
func (c *Context) Names() []string {
	names := make([]string, 0, len(c.packages))
	for _, p := range c.packages {
		names = append(names, p.name)
	}
	return names
}

// Get returns the resident package with the given name.
func (c *Context) Get(name string) (*Package, error) {
	for _, p := range c.packages {
		if p.name == name {
			c.lastErr = nil
			return p, nil
		}
	}
	return nil, c.fail(errors.Wrapf(ErrNotFound, "package %q", name))
}

// NewPackage creates an empty resident package, replacing any prior
// package of the same name.
func (c *Context) NewPackage(name string) (*Package, error) {
	if !ValidName(name) {
		return nil, c.fail(errors.Wrapf(ErrInvalid, "bad package name %q", name))
	}
	p := &Package{name: name}
	c.adopt(p)
	c.lastErr = nil
	return p, nil
}

// adopt inserts p into the resident set, replacing a package of the
// same name in place so iteration order is stable across reloads.
func (c *Context) adopt(p *Package) {
	p.ctx = c
	for i, cur := range c.packages {
		if cur.name == p.name {
			cur.ctx = nil
			c.packages[i] = p
			return
		}
	}
	c.packages = append(c.packages, p)
}

// Load reads the named package from the backing store, parses it and
// makes it resident, replacing any prior instance of the same name.
// It fails with ErrNotFound if the store has no entry for the name and
// with ErrParse if the content is malformed; on failure the resident
// set is left unchanged.
func (c *Context) Load(name string) (*Package, error) {
	if c.store == nil {
		return nil, c.fail(errors.Wrap(ErrInvalid, "context has no store"))
	}
	if !ValidName(name) {
		return nil, c.fail(errors.Wrapf(ErrInvalid, "bad package name %q", name))
	}
	r, err := c.store.Open(name)
	if err != nil {
		return nil, c.fail(err)
	}
	defer r.Close()
	return c.Import(r, name)
}

// Unload removes the named package from the resident set, releasing
// its sections, options and journal.
func (c *Context) Unload(name string) error {
	for i, p := range c.packages {
		if p.name == name {
			p.ctx = nil
			c.packages = append(c.packages[:i], c.packages[i+1:]...)
			c.lastErr = nil
			return nil
		}
	}
	return c.fail(errors.Wrapf(ErrNotFound, "package %q", name))
}

// Configs enumerates the package names available in the backing store,
// whether loaded or not.
func (c *Context) Configs() ([]string, error) {
	if c.store == nil {
		return nil, c.fail(errors.Wrap(ErrInvalid, "context has no store"))
	}
	names, err := c.store.List()
	if err != nil {
		return nil, c.fail(err)
	}
	c.lastErr = nil
	return names, nil
}
