package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alanyang/tailor-flow/internal/domain/distribution"
	portdist "github.com/alanyang/tailor-flow/internal/port/distributor"
)

var _ portdist.RosterSource = (*RosterWatcher)(nil)

const rosterDebounce = 100 * time.Millisecond

// RosterWatcher serves the default roster and reloads it when the config file changes.
// An edit that produces an invalid roster is logged and ignored.
type RosterWatcher struct {
	path    string
	pinned  bool
	current atomic.Pointer[[]string]

	mu       sync.Mutex
	debounce *time.Timer
}

func NewRosterWatcher(path string, initial []string) *RosterWatcher {
	w := &RosterWatcher{path: path}
	r := append([]string(nil), initial...)
	w.current.Store(&r)
	return w
}

// NewRosterWatcherFor serves cfg's roster. A roster pinned by the environment keeps
// precedence over the file, so the watcher never replaces it.
func NewRosterWatcherFor(cfg Config) *RosterWatcher {
	w := NewRosterWatcher(cfg.Path, cfg.Roster)
	w.pinned = cfg.RosterFromEnv
	return w
}

func (w *RosterWatcher) Roster() []string {
	return append([]string(nil), (*w.current.Load())...)
}

// Run watches the config file's directory until ctx is done. Editors often replace
// files instead of writing them in place, so the directory is watched, not the file.
func (w *RosterWatcher) Run(ctx context.Context) {
	if w.path == "" || w.pinned {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("roster watcher: failed to create watcher", "error", err)
		return
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		slog.Error("roster watcher: failed to watch config dir", "dir", dir, "error", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.debounce != nil {
				w.debounce.Stop()
			}
			w.mu.Unlock()
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceReload(rosterDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("roster watcher: error", "error", err)
		}
	}
}

func (w *RosterWatcher) debounceReload(delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(delay, func() { w.Reload() })
}

// Reload re-reads the roster from the config file now. It reports whether the
// served roster changed.
func (w *RosterWatcher) Reload() bool {
	if w.pinned {
		return false
	}
	fc, err := loadFile(w.path)
	if err != nil {
		slog.Warn("roster watcher: reading config failed, keeping roster", "path", w.path, "error", err)
		return false
	}
	if len(fc.Roster) == 0 {
		return false
	}
	next := trimAll(fc.Roster)
	if _, err := distribution.NewRoster(next); err != nil {
		slog.Warn("roster watcher: invalid roster, keeping previous", "path", w.path, "error", err)
		return false
	}
	if slices.Equal(next, *w.current.Load()) {
		return false
	}
	w.current.Store(&next)
	slog.Info("roster reloaded", "path", w.path, "workers", len(next))
	return true
}
