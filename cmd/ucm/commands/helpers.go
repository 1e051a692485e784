package commands

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/ucm/pkg/uci"
)

// confStore returns the store of committed config files.
func confStore() *uci.DirStore {
	return uci.NewDirStore(confDirFlag)
}

// saveStore returns the store of staged, uncommitted config files.
func saveStore() *uci.DirStore {
	return uci.NewDirStore(saveDirFlag)
}

// newContext returns an engine context backed by the committed store.
func newContext() *uci.Context {
	return uci.New(uci.WithStore(confStore()))
}

// loadEffective loads the named package into ctx, preferring a staged
// copy over the committed file so that successive mutating commands
// build on each other before a commit.
func loadEffective(ctx *uci.Context, name string) (*uci.Package, error) {
	r, err := saveStore().Open(name)
	if err == nil {
		defer r.Close()
		return ctx.Import(r, name)
	}
	if !errors.Is(err, uci.ErrNotFound) {
		return nil, err
	}
	return ctx.Load(name)
}

// stage writes the package to the savedir, where it waits for commit.
func stage(ctx *uci.Context, p *uci.Package) error {
	w, err := saveStore().Create(p.Name())
	if err != nil {
		return err
	}
	if err := ctx.Export(w, p); err != nil {
		w.Close()
		return err
	}
	return errors.Wrap(w.Close(), "staging package")
}

// splitPath splits a dotted CLI path, enforcing a component count.
func splitPath(path string, minParts, maxParts int) ([]string, error) {
	parts := strings.Split(path, ".")
	if len(parts) < minParts || len(parts) > maxParts {
		return nil, errors.Newf("bad path %q: want %d to %d dot-separated components", path, minParts, maxParts)
	}
	for _, p := range parts {
		if !uci.ValidName(p) {
			return nil, errors.Newf("bad path component %q in %q", p, path)
		}
	}
	return parts, nil
}

// effectiveNames returns the union of committed and staged package
// names, sorted.
func effectiveNames() ([]string, error) {
	committed, err := confStore().List()
	if err != nil {
		return nil, err
	}
	staged, err := saveStore().List()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(committed)+len(staged))
	var names []string
	for _, n := range append(committed, staged...) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}
