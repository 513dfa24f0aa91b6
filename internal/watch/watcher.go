// Package watch revalidates record files when they change on disk.
package watch

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last event before
// firing. Editors often emit several events per save.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors a directory of record files and invokes a callback when
// they change.
type Watcher struct {
	dir      string
	pattern  string
	debounce time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce window for coalescing rapid event bursts.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a Watcher for the given directory. Only events whose base name
// matches pattern trigger the callback.
func New(dir, pattern string, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		pattern:  pattern,
		debounce: DefaultDebounce,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Watch blocks until the context is cancelled, invoking onChange after each
// debounced burst of record-file events. The callback runs on the watch
// goroutine; a slow callback delays subsequent invocations but loses no
// events. Callback errors are returned to the caller and end the watch.
func (w *Watcher) Watch(ctx context.Context, onChange func(ctx context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
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

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)

		case <-fire:
			fire = nil
			if err := onChange(ctx); err != nil {
				return err
			}
		}
	}
}

// relevant reports whether the event concerns a record file write, create,
// rename, or removal.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	matched, err := path.Match(w.pattern, path.Base(event.Name))
	return err == nil && matched
}
