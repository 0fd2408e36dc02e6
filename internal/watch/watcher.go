// Package watch reports changes to the directory the picker is showing.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long a burst of events must settle before the
// change is reported.
const DefaultDebounce = 250 * time.Millisecond

// NotifyFunc receives the watched directory after it changed.
type NotifyFunc func(path string)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// Watcher follows a single directory at a time.
type Watcher struct {
	fsw      *fsnotify.Watcher
	notify   NotifyFunc
	debounce time.Duration
	logger   zerolog.Logger

	mu      sync.Mutex
	current string

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// New starts a watcher that calls notify from its own goroutine.
func New(notify NotifyFunc, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := newWatcher(notify, opts...)
	w.fsw = fsw

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	go w.loop(ctx, fsw.Events, fsw.Errors)
	return w, nil
}

func newWatcher(notify NotifyFunc, opts ...Option) *Watcher {
	w := &Watcher{
		notify:   notify,
		debounce: DefaultDebounce,
		logger:   zerolog.Nop(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch switches to path. An empty path (the root-selection level) stops
// watching without choosing a new directory.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if path == w.current {
		return nil
	}
	if w.current != "" && w.fsw != nil {
		if err := w.fsw.Remove(w.current); err != nil {
			w.logger.Debug().Err(err).Str("path", w.current).Msg("remove watch")
		}
	}
	w.current = ""
	if path == "" {
		return nil
	}
	if w.fsw != nil {
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
	w.current = path
	w.logger.Debug().Str("path", path).Msg("watching directory")
	return nil
}

// Current returns the watched directory.
func (w *Watcher) Current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		if w.fsw != nil {
			err = w.fsw.Close()
			<-w.done
		}
	})
	return err
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) {
	defer close(w.done)

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
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

		case event, ok := <-events:
			if !ok {
				return
			}
			dir, relevant := w.relevant(event)
			if !relevant {
				continue
			}
			pending = dir
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

		case err, ok := <-errs:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watcher error")

		case <-fire:
			fire = nil
			if pending != "" && pending == w.Current() && w.notify != nil {
				w.notify(pending)
			}
			pending = ""
		}
	}
}

// relevant reports whether event touches the watched directory listing.
func (w *Watcher) relevant(event fsnotify.Event) (string, bool) {
	if event.Op == fsnotify.Chmod {
		return "", false
	}
	current := w.Current()
	if current == "" {
		return "", false
	}
	if filepath.Dir(event.Name) == current || filepath.Clean(event.Name) == current {
		return current, true
	}
	return "", false
}
