// Package watcher triggers re-indexing when Markdown files under a root change.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"docs-mcp/internal/contextutil"
	"docs-mcp/internal/doctree"
)

// DefaultDebounce is the quiet period after the last change before onChange runs.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a documentation tree and calls onChange once per burst of
// changes.
type Watcher struct {
	root     string
	fsw      *fsnotify.Watcher
	onChange func(context.Context)
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Default is DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a watcher over every non-hidden directory under root.
// Watches are registered before New returns.
func New(root string, onChange func(context.Context), opts ...Option) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("onChange callback required")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		fsw:      fsw,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers dir and all its non-hidden subdirectories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && doctree.IsHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Run processes file system events until ctx is cancelled. onChange is
// called from this goroutine, so bursts arriving while it runs are folded
// into the next call.
func (w *Watcher) Run(ctx context.Context) error {
	logger := contextutil.LoggerOr(ctx, w.logger)
	defer func() {
		_ = w.fsw.Close()
	}()

	logger.InfoContext(ctx, "watching for changes", "root", w.root, "debounce", w.debounce)

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
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) && w.isNewDir(event.Name) {
				if err := w.addTree(event.Name); err != nil {
					logger.WarnContext(ctx, "failed to watch new directory", "path", event.Name, "error", err)
				}
			}

			if !isRelevant(event) {
				continue
			}

			logger.DebugContext(ctx, "file change detected", "file", filepath.Base(event.Name), "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			logger.DebugContext(ctx, "changes settled, re-indexing")
			w.onChange(ctx)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.ErrorContext(ctx, "file watcher error", "error", err)
		}
	}
}

func (w *Watcher) isNewDir(path string) bool {
	if doctree.IsHidden(filepath.Base(path)) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isRelevant reports whether an event can change the indexed documents.
// Removing or renaming an extension-less path may drop a whole directory.
func isRelevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if doctree.IsHidden(name) {
		return false
	}

	if doctree.IsMarkdown(name) {
		return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
			event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	}

	if filepath.Ext(name) == "" {
		return event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	}
	return false
}
