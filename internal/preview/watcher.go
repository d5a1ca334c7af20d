// Package preview reloads page content when its source file changes and
// notifies connected browsers.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/replicate/keepsake-site/internal/logfields"
)

// DefaultDebounce coalesces bursts of editor writes.
const DefaultDebounce = 300 * time.Millisecond

// Reloader re-reads content and reports its hash. *site.Site implements it.
type Reloader interface {
	Reload() error
	Hash() string
}

// Broadcaster receives the hash of successfully reloaded content.
type Broadcaster interface {
	Broadcast(hash string)
}

// Watcher monitors a content file and triggers debounced reloads.
type Watcher struct {
	path     string
	reloader Reloader
	notify   Broadcaster
	debounce time.Duration

	watcher  *fsnotify.Watcher
	reloadCh chan struct{}
	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher for path. A zero debounce uses DefaultDebounce.
func NewWatcher(path string, reloader Reloader, notify Broadcaster, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		reloader: reloader,
		notify:   notify,
		debounce: debounce,
		watcher:  fw,
		reloadCh: make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start watches the file's directory, which survives editors that replace files on save.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch content directory %s: %w", dir, err)
	}
	slog.Info("Watching content for changes", logfields.File(w.path))

	w.wg.Add(2)
	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Stop ends both loops and closes the underlying watcher.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.wg.Done()
	name := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				slog.Debug("Content change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
				w.trigger()
			case event.Op&fsnotify.Remove != 0:
				slog.Warn("Content file removed", logfields.File(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Content watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) trigger() {
	select {
	case w.reloadCh <- struct{}{}:
	default:
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	defer w.wg.Done()
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-w.reloadCh:
			timer.Reset(w.debounce)
		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	if err := w.reloader.Reload(); err != nil {
		slog.Error("Content reload failed; keeping previous content", logfields.File(w.path), logfields.Error(err))
		return
	}
	hash := w.reloader.Hash()
	slog.Info("Content reloaded", logfields.File(w.path), logfields.Hash(hash))
	if w.notify != nil {
		w.notify.Broadcast(hash)
	}
}
