package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 200 * time.Millisecond

type WatchOptions struct {
	Debounce time.Duration `yaml:"debounce,omitempty" json:"debounce,omitempty"`
}

// Watcher re-renders open panels when their files change on disk. Bursts of
// events for one file collapse into a single render after the debounce.
type Watcher struct {
	previewer *Previewer
	debounce  time.Duration
	fs        *fsnotify.Watcher

	mu        sync.Mutex
	files     map[string]bool
	observers map[string]func()
	dirs      map[string]bool
	timers    map[string]*time.Timer
}

func NewWatcher(previewer *Previewer, opts WatchOptions) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		previewer: previewer,
		debounce:  debounce,
		fs:        fs,
		files:     map[string]bool{},
		observers: map[string]func(){},
		dirs:      map[string]bool{},
		timers:    map[string]*time.Timer{},
	}, nil
}

// Add opens a panel for the file and starts watching it. The parent
// directory is watched so that editors replacing the file are noticed.
func (w *Watcher) Add(path string) (*Panel, error) {
	abs, err := w.watch(path)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.files[abs] = true
	w.mu.Unlock()

	return w.previewer.Open(abs)
}

// Observe calls fn, debounced, whenever path changes. It is used for files
// that have no panel, like the render configuration.
func (w *Watcher) Observe(path string, fn func()) error {
	abs, err := w.watch(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.observers[abs] = fn
	w.mu.Unlock()
	return nil
}

func (w *Watcher) watch(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return "", fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	return abs, nil
}

// Files lists the watched files, sorted.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	files := make([]string, 0, len(w.files))
	for file := range w.files {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// Run dispatches file events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimers()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watch error: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	path := filepath.Clean(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.files[path] && w.observers[path] == nil {
		return
	}
	logger.Debugf("%s: %s", path, event.Op)
	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() { w.fire(path) })
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	delete(w.timers, path)
	observer := w.observers[path]
	w.mu.Unlock()

	if observer != nil {
		observer()
		return
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Infof("%s was removed, closing its preview", path)
		w.previewer.Dispose(path)
		w.mu.Lock()
		delete(w.files, path)
		w.mu.Unlock()
		return
	}
	if _, err := w.previewer.Open(path); err != nil {
		logger.Errorf("failed to update preview of %s: %v", path, err)
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}

func (w *Watcher) Close() error {
	w.stopTimers()
	return w.fs.Close()
}
