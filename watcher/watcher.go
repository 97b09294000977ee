// Package watcher reports debounced changes below a content directory.
package watcher

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/ZacxDev/folio/frontmatter"
)

// Watcher monitors a content directory tree and signals when a content file
// is written, created, removed or renamed.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	files     map[string]bool
	debounce  time.Duration
	logger    *slog.Logger
	onChange  chan struct{}
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Root string
	// Files are watched in addition to the tree, whatever their extension,
	// e.g. the config file.
	Files       []string
	DebounceDur time.Duration
	// Logger receives watch errors. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the defaults used by the watch command.
func DefaultConfig(root string) Config {
	return Config{
		Root:        root,
		DebounceDur: 300 * time.Millisecond,
	}
}

// New creates a watcher. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	// Events carry the path a directory was added under; absolute paths keep
	// the tree and the extra files comparable.
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, errors.Wrap(err, "resolving watch root")
	}
	files := make(map[string]bool, len(cfg.Files))
	for _, f := range cfg.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %s", f)
		}
		files[abs] = true
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating fsnotify watcher")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Watcher{
		fsWatcher: fsw,
		root:      root,
		files:     files,
		debounce:  cfg.DebounceDur,
		logger:    logger,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start watches every directory below the root and returns a channel that
// receives one signal per burst of changes.
func (w *Watcher) Start() (<-chan struct{}, error) {
	if err := w.addTree(w.root); err != nil {
		return nil, err
	}
	for f := range w.files {
		dir := filepath.Dir(f)
		if err := w.fsWatcher.Add(dir); err != nil {
			return nil, errors.Wrapf(err, "watching directory %s", dir)
		}
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// addTree watches dir and its subdirectories, skipping dot directories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "walking %s", p)
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && hidden(p) {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(p); err != nil {
			return errors.Wrapf(err, "watching directory %s", p)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) && w.inTree(event.Name) && !hidden(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("watching new directory", "dir", event.Name, "error", err)
					}
					// Files may have landed before the watch was added.
					pending = true
					timer = w.reset(timer)
					continue
				}
			}

			if !w.isRelevantEvent(event) {
				continue
			}
			pending = true
			timer = w.reset(timer)

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) reset(timer *time.Timer) *time.Timer {
	if timer == nil {
		return time.NewTimer(w.debounce)
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(w.debounce)
	return timer
}

// isRelevantEvent reports whether the event touches a content file below the
// root or one of the extra files.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if w.files[filepath.Clean(event.Name)] {
		return true
	}
	if !w.inTree(event.Name) || hidden(event.Name) {
		return false
	}
	return frontmatter.Supported(event.Name)
}

func (w *Watcher) inTree(p string) bool {
	rel, err := filepath.Rel(w.root, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func hidden(p string) bool {
	return strings.HasPrefix(filepath.Base(p), ".")
}
