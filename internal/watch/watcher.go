package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/adocnav/internal/logfields"
	"git.home.luguber.info/inful/adocnav/internal/util/sets"
)

// DefaultDebounce collapses bursts of file events into one rebuild.
const DefaultDebounce = 2 * time.Second

// Watcher monitors an AsciiDoc source tree and triggers a rebuild callback
// whenever relevant files change. Paths the generator itself writes (the nav
// file, alias stubs) are ignored so a rebuild never retriggers itself.
type Watcher struct {
	root     string
	ignore   sets.Set[string]
	rebuild  func(ctx context.Context) error
	watcher  *fsnotify.Watcher
	debounce time.Duration
	trigger  chan struct{}
}

// New creates a watcher over root. ignorePaths are absolute or root-relative
// paths of generated files whose events must not trigger rebuilds.
func New(root string, ignorePaths []string, rebuild func(ctx context.Context) error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve watch root: %w", err)
	}

	ignore := sets.New[string]()
	for _, p := range ignorePaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		ignore.Add(abs)
	}

	return &Watcher{
		root:     absRoot,
		ignore:   ignore,
		rebuild:  rebuild,
		watcher:  fsw,
		debounce: DefaultDebounce,
		trigger:  make(chan struct{}, 1),
	}, nil
}

// Run watches until the context is cancelled. The initial build is the
// caller's responsibility; Run only reacts to changes.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.addTree(w.root); err != nil {
		return err
	}
	slog.Info("Watching source tree", logfields.Path(w.root))

	go w.rebuildLoop(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", logfields.Error(err))
		}
	}
}

// addTree registers the directory and all subdirectories with the watcher.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unwatchable path", logfields.Path(path), logfields.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if w.ignore.Has(abs) {
		return
	}

	// Newly created directories join the watch set so files added inside
	// them are seen.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			if err := w.addTree(abs); err != nil {
				slog.Warn("Could not watch new directory", logfields.Path(abs), logfields.Error(err))
			}
			return
		}
	}

	if !Relevant(abs, event.Op) {
		return
	}

	slog.Debug("Source change detected", logfields.Path(abs), slog.String("op", event.Op.String()))
	select {
	case w.trigger <- struct{}{}:
	default: // a rebuild is already pending
	}
}

// Relevant reports whether a file event should trigger a rebuild: AsciiDoc
// sources only, on write/create/remove/rename.
func Relevant(path string, op fsnotify.Op) bool {
	if !strings.EqualFold(filepath.Ext(path), ".adoc") {
		return false
	}
	return op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

// rebuildLoop debounces triggers and runs the rebuild callback.
func (w *Watcher) rebuildLoop(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.trigger:
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := w.rebuild(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}
