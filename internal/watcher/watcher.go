// Package watcher monitors a config directory for changes.
//
// It wraps fsnotify with per-file debouncing so that editors doing
// write-then-rename saves produce a single event, and reports changes
// by package name rather than raw path.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change observed on a config file.
type Op int

const (
	// OpWrite indicates the file was created or modified.
	OpWrite Op = iota

	// OpRemove indicates the file was deleted or renamed away.
	OpRemove
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Event describes one observed change.
type Event struct {
	// Name is the package name derived from the file name.
	Name string

	// Path is the absolute path of the changed file.
	Path string

	Op   Op
	Time time.Time
}

// Handler is called for each debounced change event.
type Handler func(Event)

// Accept decides whether a file name is worth reporting. It is used to
// filter out temp files and editor droppings in the config directory.
type Accept func(name string) bool

// Watcher monitors one directory for config file changes.
type Watcher struct {
	dir      string
	log      *slog.Logger
	handler  Handler
	accept   Accept
	debounce time.Duration

	mu       sync.Mutex
	lastSeen map[string]time.Time
	running  bool

	fsw    *fsnotify.Watcher
	doneCh chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the per-file debounce window. Events for the same
// file closer together than d are collapsed into one.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithAccept sets the file name filter.
func WithAccept(f Accept) Option {
	return func(w *Watcher) {
		w.accept = f
	}
}

// New creates a watcher for dir that invokes handler on changes.
func New(dir string, log *slog.Logger, handler Handler, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating fsnotify watcher")
	}

	w := &Watcher{
		dir:      dir,
		log:      log,
		handler:  handler,
		accept:   func(string) bool { return true },
		debounce: 500 * time.Millisecond,
		lastSeen: make(map[string]time.Time),
		fsw:      fsw,
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. It is non-blocking; the event loop runs in a
// goroutine until ctx is canceled or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.fsw.Add(w.dir); err != nil {
		return errors.Wrapf(err, "watching %s", w.dir)
	}

	w.running = true
	go w.loop(ctx)
	return nil
}

// Close stops the event loop and releases the underlying watcher.
// It blocks until the loop has exited.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if running {
		<-w.doneCh
	}
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.dispatch(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "dir", w.dir, "err", err)
		}
	}
}

func (w *Watcher) dispatch(ev fsnotify.Event) {
	name := filepath.Base(ev.Name)
	if !w.accept(name) {
		return
	}

	var op Op
	switch {
	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		op = OpWrite
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		op = OpRemove
	default:
		return
	}

	now := time.Now()
	w.mu.Lock()
	if last, ok := w.lastSeen[ev.Name]; ok && now.Sub(last) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.lastSeen[ev.Name] = now
	w.mu.Unlock()

	w.handler(Event{
		Name: name,
		Path: ev.Name,
		Op:   op,
		Time: now,
	})
}
