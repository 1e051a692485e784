package uci

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/ucm/pkg/fileutil"
)

// Store is the backing-stream collaborator consumed by the engine. It
// maps logical package names to byte streams; the engine is agnostic to
// how names map to physical storage.
type Store interface {
	// Open opens the named stream for reading. It fails with
	// ErrNotFound if no stream exists for the name.
	Open(name string) (io.ReadCloser, error)

	// Create opens the named stream for writing, replacing any prior
	// content once the returned writer is closed.
	Create(name string) (io.WriteCloser, error)

	// List enumerates the available logical names.
	List() ([]string, error)
}

// DirStore is a Store keeping one file per package name under a single
// directory, the layout used by router-class systems for /etc/config.
type DirStore struct {
	dir string
}

// NewDirStore returns a store rooted at dir. The directory is not
// created until the first write.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Dir returns the root directory of the store.
func (d *DirStore) Dir() string { return d.dir }

// Open opens the config file for the given package name.
func (d *DirStore) Open(name string) (io.ReadCloser, error) {
	if !ValidName(name) {
		return nil, errors.Wrapf(ErrInvalid, "bad config name %q", name)
	}
	f, err := os.Open(filepath.Join(d.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "config %q", name)
		}
		return nil, errors.Wrapf(ErrIO, "opening config %q: %v", name, err)
	}
	return f, nil
}

// Create returns a writer for the named config file. Content is staged
// in memory and written atomically when the writer is closed, so an
// interrupted write never corrupts the prior file.
func (d *DirStore) Create(name string) (io.WriteCloser, error) {
	if !ValidName(name) {
		return nil, errors.Wrapf(ErrInvalid, "bad config name %q", name)
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, errors.Wrapf(ErrIO, "creating config dir: %v", err)
	}
	return &atomicWriter{path: filepath.Join(d.dir, name)}, nil
}

// Remove deletes the named config file. Removing an absent name fails
// with ErrNotFound.
func (d *DirStore) Remove(name string) error {
	if !ValidName(name) {
		return errors.Wrapf(ErrInvalid, "bad config name %q", name)
	}
	if err := os.Remove(filepath.Join(d.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrNotFound, "config %q", name)
		}
		return errors.Wrapf(ErrIO, "removing config %q: %v", name, err)
	}
	return nil
}

// List enumerates the config files in the store directory. Entries
// whose names would not be valid package names are skipped, matching
// the convention that editor backups and the like are not configs.
func (d *DirStore) List() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(ErrIO, "listing configs: %v", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !ValidName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// atomicWriter buffers writes and commits them with a temp-file rename
// on Close.
type atomicWriter struct {
	path string
	buf  bytes.Buffer
}

func (w *atomicWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *atomicWriter) Close() error {
	if err := fileutil.AtomicWriteFile(w.path, w.buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(ErrIO, "writing config: %v", err)
	}
	return nil
}
