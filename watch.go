package folio

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
)

// Watcher reloads a MemoryStore from a content directory whenever a file in
// it changes.
type Watcher struct {
	dir      string
	store    *MemoryStore
	logger   echo.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
	done     chan struct{}
	exited   chan struct{}
}

// NewWatcher watches dir and every subdirectory in it.
func NewWatcher(dir string, store *MemoryStore, logger echo.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(p)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:      dir,
		store:    store,
		logger:   logger,
		watcher:  fw,
		debounce: 300 * time.Millisecond,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}, nil
}

// Start runs the watch loop until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Close stops watching.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.exited)
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.watcher.Add(ev.Name)
				}
			}
			if !strings.HasSuffix(ev.Name, ".md") && ev.Op&(fsnotify.Remove|fsnotify.Rename) == 0 {
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
			if err := w.Reload(ctx); err != nil {
				w.logger.Errorf("content reload: %v", err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("content watcher: %v", err)
		}
	}
}

// Reload reads the content directory and replaces the store contents.
// On error the previous documents stay in place.
func (w *Watcher) Reload(ctx context.Context) error {
	docs, err := LoadDocuments(ctx, os.DirFS(w.dir))
	if err != nil {
		return err
	}
	if err := w.store.Replace(docs); err != nil {
		return err
	}
	w.logger.Infof("content reloaded: %d documents", len(docs))
	return nil
}
