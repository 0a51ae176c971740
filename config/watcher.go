package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a configuration file when it changes on disk. It
// watches the file's directory rather than the file itself, so editors
// that save by atomic rename are still seen.
//
// Reload handlers receive only configurations that parsed and
// validated; a broken file on disk surfaces through the error handlers
// and the previous configuration stays in effect.
type Watcher struct {
	path string
	dir  string
	fsw  *fsnotify.Watcher

	mu       sync.RWMutex
	onReload []func(Config)
	onError  []func(error)
	closed   bool
	started  bool

	closeCh chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher for the given configuration file. The
// file does not need to exist yet; its directory does.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:    abs,
		dir:     filepath.Dir(abs),
		fsw:     fsw,
		closeCh: make(chan struct{}),
	}, nil
}

// Path returns the watched file's absolute path.
func (w *Watcher) Path() string {
	return w.path
}

// OnReload registers a handler for successful reloads. Handlers run on
// the watcher goroutine, in registration order, with panic recovery.
func (w *Watcher) OnReload(fn func(Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = append(w.onReload, fn)
}

// OnError registers a handler for reload failures and watch errors.
func (w *Watcher) OnError(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = append(w.onError, fn)
}

// Start begins watching. It may be called once.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.started {
		return nil
	}

	if err := w.fsw.Add(w.dir); err != nil {
		return err
	}
	w.started = true

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// loop handles incoming fsnotify events until the watcher closes.
func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.fireError(err)
		}
	}
}

// handleEvent reloads when the watched file was written, created, or
// replaced.
func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		w.fireError(err)
		return
	}
	w.fireReload(cfg)
}

func (w *Watcher) fireReload(cfg Config) {
	w.mu.RLock()
	handlers := make([]func(Config), len(w.onReload))
	copy(handlers, w.onReload)
	w.mu.RUnlock()

	for _, fn := range handlers {
		safeReload(fn, cfg)
	}
}

func (w *Watcher) fireError(err error) {
	w.mu.RLock()
	handlers := make([]func(error), len(w.onError))
	copy(handlers, w.onError)
	w.mu.RUnlock()

	for _, fn := range handlers {
		safeError(fn, err)
	}
}

// safeReload calls a reload handler with panic recovery.
func safeReload(fn func(Config), cfg Config) {
	defer func() {
		_ = recover()
	}()
	fn(cfg)
}

// safeError calls an error handler with panic recovery.
func safeError(fn func(error), err error) {
	defer func() {
		_ = recover()
	}()
	fn(err)
}
