package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/beantownbytes/menuentry/internal/desktop"
	"github.com/beantownbytes/menuentry/internal/logging"
)

// DefaultDebounce is how long a Watcher waits for a burst of events to end.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to the entry files of a store's directories.
// Bursts of events are coalesced into one signal on Changes.
type Watcher struct {
	fs       *fsnotify.Watcher
	changes  chan struct{}
	done     chan struct{}
	debounce time.Duration
	logger   *logging.Logger
}

// Watch starts watching the user and system directories that exist now.
// Directories created later are not picked up. The watcher stops when ctx
// is canceled or Close is called.
func (s *Store) Watch(ctx context.Context, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := append([]string{s.opts.UserDir}, s.opts.SystemDirs...)
	watched := 0
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			s.logger.Debug("not watching missing directory", "dir", dir)
			continue
		}
		if err := fsw.Add(dir); err != nil {
			s.logger.Warn("cannot watch directory", "dir", dir, "error", err)
			continue
		}
		watched++
	}
	s.logger.Info("watching entry directories", "count", watched)

	w := &Watcher{
		fs:       fsw,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		debounce: debounce,
		logger:   s.logger,
	}
	go w.run(ctx)
	return w, nil
}

// Changes receives a value after entry files changed. It is closed when the
// watcher stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher and waits for it to finish.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer close(w.changes)

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
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !isEntryEvent(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

// isEntryEvent skips chmod-only events and files that are not entries,
// including the temp files of an atomic write.
func isEntryEvent(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(ev.Name)
	return strings.HasSuffix(name, desktop.FileExtension) && !strings.HasPrefix(name, ".")
}
