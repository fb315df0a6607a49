// Package watch turns bursts of file system events under the locale
// directories into single change notifications.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a
// change is reported.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc receives the files changed during one burst, sorted.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher reports changes to files under a set of directories.
type Watcher struct {
	dirs     []string
	onChange ChangeFunc
	debounce time.Duration
	filter   func(path string) bool
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithFilter drops events for paths the filter rejects. Directories are
// always watched.
func WithFilter(fn func(path string) bool) Option {
	return func(w *Watcher) { w.filter = fn }
}

// WithLogger sets the logger for watcher events.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New returns a Watcher over dirs that calls onChange after each burst.
func New(dirs []string, onChange ChangeFunc, opts ...Option) *Watcher {
	w := &Watcher{
		dirs:     dirs,
		onChange: onChange,
		debounce: DefaultDebounce,
		filter:   func(string) bool { return true },
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. onChange runs on the Run goroutine,
// so bursts arriving while it runs are reported afterwards.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	w.logger.Info("watching locale directories", "dirs", len(w.dirs), "debounce", w.debounce)

	pending := make(map[string]struct{})
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			queued := 0
			switch {
			case event.Has(fsnotify.Create) && isDir(event.Name):
				queued = w.addTree(fw, event.Name, pending)
			case event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write):
				// metadata only
			case (event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) && slices.Contains(fw.WatchList(), event.Name):
				w.logger.Debug("directory removed", "dir", event.Name)
				pending[event.Name] = struct{}{}
				queued = 1
			case w.filter(event.Name):
				w.logger.Debug("file event", "file", event.Name, "op", event.Op.String())
				pending[event.Name] = struct{}{}
				queued = 1
			}
			if queued == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			sort.Strings(changed)
			clear(pending)
			w.onChange(ctx, changed)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// addTree watches dir and every directory below it, and queues the files
// the filter accepts. Files created before the watch was registered would
// otherwise go unreported.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string, pending map[string]struct{}) int {
	queued := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := fw.Add(path); err != nil {
				w.logger.Warn("cannot watch new directory", "dir", path, "error", err)
			}
			return nil
		}
		if w.filter(path) {
			pending[path] = struct{}{}
			queued++
		}
		return nil
	})
	if err != nil {
		w.logger.Warn("cannot walk new directory", "dir", dir, "error", err)
	}
	w.logger.Debug("directory added", "dir", dir, "files", queued)
	return queued
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
