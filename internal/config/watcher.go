package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ekisa-team/ttsrelay/internal/xfs"
)

const (
	reloadDebounce    = 500 * time.Millisecond
	configMapDataLink = "..data"
)

// Watcher watches for configuration changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onReload func(*Config, error)
	current  *Config
	done     chan struct{}
	path     string
	mu       sync.RWMutex
	reloads  atomic.Uint32
	closed   sync.Once
}

// NewWatcher loads the file at path and starts watching it.
// onReload runs after every reload attempt; on failure the previous snapshot is kept.
func NewWatcher(path string, onReload func(*Config, error)) (*Watcher, error) {
	path = xfs.ExpandTilde(path)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// The directory is watched so saves that replace the file by rename keep reloading.
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch config directory %s: %w", dir, err)
	}

	watcher := &Watcher{
		fsw:      fsw,
		onReload: onReload,
		current:  cfg,
		done:     make(chan struct{}),
		path:     filepath.Clean(path),
	}

	go watcher.watch()

	return watcher, nil
}

// watch watches for configuration changes.
func (cw *Watcher) watch() {
	var timer *time.Timer

	for {
		select {
		case <-cw.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-cw.fsw.Events:
			if !ok {
				return
			}

			if !cw.affectsConfig(event) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, cw.reload)

		case err, ok := <-cw.fsw.Errors:
			if !ok {
				return
			}

			slog.Error("Watcher error", "error", err)
		}
	}
}

// affectsConfig reports whether event may have changed the watched file.
// Kubernetes ConfigMap volumes swap a "..data" symlink instead of touching the file.
func (cw *Watcher) affectsConfig(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}

	name := filepath.Clean(event.Name)
	if name == cw.path {
		return true
	}

	return event.Has(fsnotify.Create) && filepath.Base(name) == configMapDataLink
}

// reload reloads the config file.
func (cw *Watcher) reload() {
	select {
	case <-cw.done:
		return
	default:
	}

	count := cw.reloads.Add(1)
	slog.Info("Reloading config file", "path", cw.path, "count", count)

	cfg, err := LoadAndValidate(cw.path)
	if err != nil {
		slog.Error("Failed to reload config, keeping previous snapshot", "error", err)
		if cw.onReload != nil {
			cw.onReload(nil, err)
		}
		return
	}

	cw.mu.Lock()
	cw.current = cfg
	cw.mu.Unlock()

	slog.Info("Config reloaded successfully", "count", count)
	if cw.onReload != nil {
		cw.onReload(cfg, nil)
	}
}

// Snapshot returns the current config snapshot (thread-safe).
func (cw *Watcher) Snapshot() *Config {
	cw.mu.RLock()
	defer cw.mu.RUnlock()

	return cw.current
}

// Close stops watching. It is safe to call more than once.
func (cw *Watcher) Close() error {
	var err error
	cw.closed.Do(func() {
		close(cw.done)
		err = cw.fsw.Close()
	})
	return err
}
