package filetree

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/agentdeck/agentdeck/pkg/logger"
)

// Watcher monitors a directory tree and reports debounced change
// notifications. Consumers typically rebuild a snapshot on each
// notification.
type Watcher struct {
	root       string
	ignoreDirs []string
	debounce   time.Duration
	fsw        *fsnotify.Watcher
	changes    chan struct{}
	done       chan struct{}
	closeOnce  sync.Once
}

// NewWatcher creates a watcher rooted at root. Directories named in
// ignoreDirs are not watched. debounce collapses bursts of events into
// a single notification.
func NewWatcher(root string, ignoreDirs []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}

	w := &Watcher{
		root:       root,
		ignoreDirs: ignoreDirs,
		debounce:   debounce,
		fsw:        fsw,
		changes:    make(chan struct{}, 1),
		done:       make(chan struct{}),
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Changes returns the debounced notification channel. At most one
// notification is pending at any time.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start runs the event loop until the context is cancelled or Close is
// called.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Close stops the watcher and releases the underlying OS resources.
// Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && w.isIgnored(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch directory %q", path)
		}
		return nil
	})
}

func (w *Watcher) isIgnored(name string) bool {
	for _, dir := range w.ignoreDirs {
		if name == dir {
			return true
		}
	}
	return false
}

func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.skipEvent(event) {
				continue
			}

			// Newly created directories need their own watch
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
				}
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
		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.G(ctx).WithError(err).Warn("File watcher error")
		case <-ctx.Done():
			return
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) skipEvent(event fsnotify.Event) bool {
	for _, dir := range w.ignoreDirs {
		if strings.Contains(event.Name, string(os.PathSeparator)+dir+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}
