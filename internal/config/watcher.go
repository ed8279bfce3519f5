package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"uvcat/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches .uvcat/config.yaml and delivers reloaded configs on a
// channel. Editors replace files with rename+create, so the watcher
// monitors the .uvcat directory and filters by filename; rapid saves are
// debounced before the reload fires.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	workspace   string
	configPath  string
	debounceDur time.Duration
	pendingAt   time.Time
	reloads     chan *Config
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewWatcher creates a config watcher for the given workspace.
func NewWatcher(workspace string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     fw,
		workspace:   workspace,
		configPath:  Path(workspace),
		debounceDur: 250 * time.Millisecond,
		reloads:     make(chan *Config, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Reloads returns the channel on which reloaded configs are delivered.
func (w *Watcher) Reloads() <-chan *Config {
	return w.reloads
}

// Start begins watching. Non-blocking; the watch loop runs in a
// goroutine until Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil // Already running
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.configPath)
	if err := w.watcher.Add(dir); err != nil {
		// Directory may not exist yet; deliver nothing until it does.
		logging.Get(logging.CategoryConfig).Warn("watcher: initial watch failed (dir may not exist): %v", err)
	} else {
		logging.Config("watcher: watching %s", dir)
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryConfig).Error("watcher: error closing: %v", err)
	}
	logging.Config("watcher: stopped")
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Config("watcher: context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryConfig).Error("watcher error: %v", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.configPath) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	logging.ConfigDebug("watcher: %s event for %s", event.Op, event.Name)
	w.mu.Lock()
	w.pendingAt = time.Now()
	w.mu.Unlock()
}

// flushPending reloads once a pending change has settled past the
// debounce window.
func (w *Watcher) flushPending() {
	w.mu.Lock()
	if w.pendingAt.IsZero() || time.Since(w.pendingAt) < w.debounceDur {
		w.mu.Unlock()
		return
	}
	w.pendingAt = time.Time{}
	w.mu.Unlock()

	cfg, err := Load(w.workspace)
	if err != nil {
		logging.Get(logging.CategoryConfig).Warn("watcher: reload failed, keeping previous config: %v", err)
		return
	}
	logging.Config("watcher: config reloaded")

	// Drop a stale unconsumed reload rather than block the loop.
	select {
	case <-w.reloads:
	default:
	}
	w.reloads <- cfg
}
