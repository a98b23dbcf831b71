package levels

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce drops repeated events for the same file; editors write several times per save.
const debounce = 100 * time.Millisecond

// Change identifies a level set whose file changed on disk.
type Change struct {
	ID   string
	Path string
}

// Watcher reports edits to level files so a host can reload a set between rounds.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	once    sync.Once
	quit    chan struct{}
	done    chan struct{}
}

// NewWatcher starts watching the given directories. The watcher stops when
// ctx is cancelled or Close is called.
func NewWatcher(ctx context.Context, dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher: fw,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run(ctx)
	return w, nil
}

// Close stops the watcher. The Events and Errors channels are closed once
// the event loop has exited.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.quit)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isSupportedExtension(filepath.Ext(event.Name)) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now

			base := filepath.Base(event.Name)
			change := Change{ID: strings.TrimSuffix(base, filepath.Ext(base)), Path: event.Name}
			select {
			case w.Events <- change:
			case <-w.quit:
				return
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.quit:
			return
		case <-ctx.Done():
			_ = w.watcher.Close()
			return
		}
	}
}
