// Package settings keeps the runtime settings document cached in memory
// and reloads it when the file changes on disk.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"nexus-backend/internal/domain/document"
)

// Loader is the subset of the store the watcher needs.
type Loader interface {
	LoadSettings() (*document.Settings, error)
	SettingsPath() string
}

// Watcher caches the current settings and refreshes the cache when the
// settings file is written, whether through the API or externally. PUT
// /api/settings goes through Refresh directly; the fsnotify path covers
// edits made behind the server's back.
type Watcher struct {
	loader      Loader
	watcher     *fsnotify.Watcher
	logger      *zap.Logger
	mu          sync.RWMutex
	current     *document.Settings
	onChange    []func(*document.Settings)
	stopCh      chan struct{}
	lastModTime time.Time
}

// NewWatcher loads the initial settings and begins watching the settings
// file's directory. Watching the directory instead of the file survives
// the atomic rename the store performs on every save.
func NewWatcher(loader Loader, logger *zap.Logger) (*Watcher, error) {
	current, err := loader.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load initial settings: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(loader.SettingsPath())); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch settings directory: %w", err)
	}

	w := &Watcher{
		loader:  loader,
		watcher: fsWatcher,
		logger:  logger,
		current: current,
		stopCh:  make(chan struct{}),
	}
	go w.watch()
	return w, nil
}

// Current returns the cached settings.
func (w *Watcher) Current() *document.Settings {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers a callback invoked with the new settings after every
// reload. Callbacks run on the watcher goroutine and must not block.
func (w *Watcher) OnChange(fn func(*document.Settings)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Refresh reloads the settings from disk immediately.
func (w *Watcher) Refresh() error {
	settings, err := w.loader.LoadSettings()
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.current = settings
	callbacks := append([]func(*document.Settings){}, w.onChange...)
	w.mu.Unlock()

	for _, fn := range callbacks {
		fn(settings)
	}
	return nil
}

// Stop ends the watch goroutine and releases the file watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

func (w *Watcher) watch() {
	path := w.loader.SettingsPath()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.modTimeAdvanced(path) {
				continue
			}
			if err := w.Refresh(); err != nil {
				w.logger.Warn("settings reload failed", zap.Error(err))
				continue
			}
			w.logger.Info("settings reloaded",
				zap.Int("autoSaveInterval", w.Current().AutoSaveInterval),
				zap.Int("maxVersions", w.Current().MaxVersions),
			)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("settings watcher error", zap.Error(err))
		case <-w.stopCh:
			return
		}
	}
}

// modTimeAdvanced debounces duplicate events for a single write.
func (w *Watcher) modTimeAdvanced(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !info.ModTime().After(w.lastModTime) {
		return false
	}
	w.lastModTime = info.ModTime()
	return true
}
