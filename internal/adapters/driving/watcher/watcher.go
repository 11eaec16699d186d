// Package watcher ingests media files as they appear in a directory tree.
// It listens for filesystem events with fsnotify and hands every created
// or written file to the ingest service once writes have settled.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driving"
	"github.com/custodia-labs/travelog/internal/logger"
	"github.com/custodia-labs/travelog/internal/parsers"
)

// DefaultSettle is how long a file must go without events before it is ingested.
const DefaultSettle = 500 * time.Millisecond

// ErrRunning is returned by Start when the watcher is already running.
var ErrRunning = errors.New("watcher: already running")

// Result reports the outcome of one ingestion triggered by the watcher.
type Result struct {
	Path string
	ID   string
	Err  error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets the quiet period before a changed file is ingested.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		w.settle = d
	}
}

// WithExtra sets the metadata stored alongside every ingested result.
func WithExtra(extra map[string]any) Option {
	return func(w *Watcher) {
		w.extra = extra
	}
}

// WithNotify registers a callback invoked after every ingestion.
// It is called from the watcher's goroutines.
func WithNotify(fn func(Result)) Option {
	return func(w *Watcher) {
		w.notify = fn
	}
}

// Watcher ingests files created or written under a root directory.
// Hidden files and directories are skipped.
type Watcher struct {
	root   string
	ingest driving.IngestService
	settle time.Duration
	extra  map[string]any
	notify func(Result)

	mu      sync.Mutex
	running bool
	fsw     *fsnotify.Watcher
	pending map[string]*time.Timer
	stopCh  chan struct{}
	doneCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a watcher for root.
func New(root string, ingest driving.IngestService, opts ...Option) *Watcher {
	w := &Watcher{
		root:   root,
		ingest: ingest,
		settle: DefaultSettle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Start registers the directory tree and begins watching in the background.
// It returns once every existing directory is registered.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return ErrRunning
	}

	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("watch root %s: %w", w.root, domain.ErrInvalidInput)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch root %s is not a directory: %w", w.root, domain.ErrInvalidInput)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.addTree(fsw, w.root, nil); err != nil {
		fsw.Close()
		return err
	}

	w.fsw = fsw
	w.pending = make(map[string]*time.Timer)
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	go w.run(ctx, fsw, w.stopCh, w.doneCh)

	logger.Info("watching %s", w.root)
	return nil
}

// Stop stops watching and waits for in-flight ingestions to finish.
// Files still settling are dropped.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	close(w.stopCh)
	for path, timer := range w.pending {
		if timer.Stop() {
			w.wg.Done()
		}
		delete(w.pending, path)
	}
	doneCh := w.doneCh
	w.mu.Unlock()

	<-doneCh
	w.wg.Wait()

	return w.fsw.Close()
}

// Done is closed when the event loop exits, either through Stop or
// context cancellation.
func (w *Watcher) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doneCh
}

// run is the event loop.
func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, fsw, event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher: %v", err)
		}
	}
}

// handleEvent schedules an ingestion for files worth ingesting and
// registers newly created directories.
func (w *Watcher) handleEvent(ctx context.Context, fsw *fsnotify.Watcher, event fsnotify.Event) {
	if w.hidden(event.Name) {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			// Files moved in with the directory produce no events of their own.
			onFile := func(path string) { w.consider(ctx, path) }
			if err := w.addTree(fsw, event.Name, onFile); err != nil {
				logger.Warn("watcher: %v", err)
			}
		}
		return
	}

	w.consider(ctx, event.Name)
}

// consider schedules path if a parser supports it.
func (w *Watcher) consider(ctx context.Context, path string) {
	if !w.ingest.Supports(path) {
		logger.Debug("watcher: skipping unsupported %s", path)
		return
	}
	w.schedule(ctx, path)
}

// schedule (re)arms the settle timer for path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}

	if timer, ok := w.pending[path]; ok && timer.Stop() {
		timer.Reset(w.settle)
		return
	}

	w.wg.Add(1)
	w.pending[path] = time.AfterFunc(w.settle, func() {
		defer w.wg.Done()
		w.fire(ctx, path)
	})
}

// fire ingests a settled file.
func (w *Watcher) fire(ctx context.Context, path string) {
	w.mu.Lock()
	if _, ok := w.pending[path]; !ok {
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	w.mu.Unlock()

	if ctx.Err() != nil || !parsers.Readable(path) {
		return
	}

	id, err := w.ingest.Ingest(ctx, path, w.extra)
	if err != nil {
		logger.Warn("watcher: ingest %s: %v", path, err)
	} else {
		logger.Info("watcher: ingested %s as %s", path, id)
	}
	if w.notify != nil {
		w.notify(Result{Path: path, ID: id, Err: err})
	}
}

// addTree registers dir and every non-hidden directory below it.
// onFile, when set, is called for every non-hidden file found.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string, onFile func(string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != w.root && w.hidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			if onFile != nil {
				onFile(path)
			}
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// hidden reports whether any element of path below the root starts with a dot.
func (w *Watcher) hidden(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if strings.HasPrefix(part, ".") && part != ".." {
			return true
		}
	}
	return false
}
