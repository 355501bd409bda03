// Package watch reports supported documents dropped into a directory tree.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docverify/internal/core/ports/driven"
	"github.com/custodia-labs/docverify/internal/logger"
)

// DefaultDebounce coalesces the write bursts of a file being copied in.
const DefaultDebounce = 500 * time.Millisecond

// DefaultExtensions are the file types the extraction API accepts.
var DefaultExtensions = []string{"pdf", "png", "jpg", "jpeg", "tif", "tiff"}

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher watches a directory tree with fsnotify.
type Watcher struct {
	debounce time.Duration
	exts     map[string]struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a changed file is reported.
// Zero reports every event immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithExtensions replaces the accepted extensions (without the dot).
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.exts = extensionSet(exts)
	}
}

// NewWatcher creates a watcher accepting DefaultExtensions.
func NewWatcher(opts ...Option) *Watcher {
	w := &Watcher{
		debounce: DefaultDebounce,
		exts:     extensionSet(DefaultExtensions),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch starts watching root and every directory beneath it.
// Directories created later are added as they appear.
func (w *Watcher) Watch(ctx context.Context, root string) (<-chan string, <-chan error, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := addTree(fw, root); err != nil {
		_ = fw.Close()
		return nil, nil, err
	}

	files := make(chan string)
	errs := make(chan error, 1)
	go w.run(ctx, fw, files, errs)

	logger.Debug("Watching %s", root)
	return files, errs, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, files chan<- string, errs chan<- error) {
	defer close(errs)
	defer close(files)
	defer fw.Close()

	pending := make(map[string]time.Time)
	var tick <-chan time.Time
	if w.debounce > 0 {
		ticker := time.NewTicker(w.debounce / 2)
		defer ticker.Stop()
		tick = ticker.C
	}

	emit := func(path string) bool {
		select {
		case files <- path:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				if err := addTree(fw, ev.Name); err != nil {
					logger.Warn("Failed to watch %s: %v", ev.Name, err)
				}
				continue
			}
			if !w.accepts(ev) {
				continue
			}
			if w.debounce == 0 {
				if !emit(ev.Name) {
					return
				}
				continue
			}
			pending[ev.Name] = time.Now()

		case now := <-tick:
			for _, path := range ready(pending, now, w.debounce) {
				delete(pending, path)
				if !emit(path) {
					return
				}
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			select {
			case errs <- err:
			default:
				logger.Warn("Watcher error dropped: %v", err)
			}
		}
	}
}

// accepts reports whether ev names a supported file that was written.
func (w *Watcher) accepts(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(ev.Name)), ".")
	_, ok := w.exts[ext]
	return ok
}

// ready returns the pending paths quiet for at least d, oldest first.
func ready(pending map[string]time.Time, now time.Time, d time.Duration) []string {
	var paths []string
	for path, last := range pending {
		if now.Sub(last) >= d {
			paths = append(paths, path)
		}
	}
	sort.Slice(paths, func(i, j int) bool {
		return pending[paths[i]].Before(pending[paths[j]])
	})
	return paths
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		set[strings.TrimPrefix(strings.ToLower(e), ".")] = struct{}{}
	}
	return set
}
