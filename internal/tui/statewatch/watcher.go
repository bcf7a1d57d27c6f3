// Package statewatch reloads a state document whenever it changes on disk
// and delivers the new stores as Bubble Tea messages.
package statewatch

import (
	"fmt"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/yutounun/storetracker/internal/core/statedoc"
	"github.com/yutounun/storetracker/internal/tracker"
)

// ReloadedMsg carries the stores parsed after a change. Err is set when the
// document could not be read or parsed; Stores is nil in that case.
type ReloadedMsg struct {
	Path   string
	Stores tracker.Stores
	Err    error
}

// Watcher watches a single state file.
type Watcher struct {
	watcher     *fsnotify.Watcher
	path        string
	debounceDur time.Duration
	logger      zerolog.Logger
}

// New starts watching path. The parent directory is watched so editors
// that replace the file on save are still noticed.
func New(path string, logger zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve state file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		watcher:     watcher,
		path:        abs,
		debounceDur: 100 * time.Millisecond,
		logger:      logger,
	}, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Start returns a command that blocks until the file changes, then reloads
// it. Issue Start again after every ReloadedMsg to keep watching. The
// command returns nil once the watcher is closed.
func (w *Watcher) Start() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.relevant(event) {
					continue
				}

				// Debounce: wait for writes to settle
				time.Sleep(w.debounceDur)
				if !w.drain() {
					return nil
				}

				stores, err := statedoc.Load(w.path)
				if err != nil {
					w.logger.Warn().Err(err).Str("path", w.path).Msg("state reload failed")
					return ReloadedMsg{Path: w.path, Err: err}
				}
				w.logger.Debug().Str("path", w.path).Int("stores", len(stores)).Msg("state reloaded")
				return ReloadedMsg{Path: w.path, Stores: stores}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				w.logger.Debug().Err(err).Msg("watch error")
			}
		}
	}
}

// drain discards events queued during the debounce. It reports false when
// the watcher was closed meanwhile.
func (w *Watcher) drain() bool {
	for {
		select {
		case _, ok := <-w.watcher.Events:
			if !ok {
				return false
			}
		default:
			return true
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
