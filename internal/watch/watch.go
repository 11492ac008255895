package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/emzakit/slothymarker/pkg/errors"
)

// debounce collapses the bursts of events editors emit on save
const debounce = 200 * time.Millisecond

// Watcher notifies when the watched document changes on disk. The parent
// directory is watched rather than the file itself, so editors that replace
// the file on save keep the watch alive.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	onChange func()
	done     chan struct{}
}

// New starts watching path and calls onChange after each change settles
func New(path string, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewIOError("failed to resolve watch path", err).WithContext("path", path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewIOError("failed to create file watcher", err)
	}
	if errAdd := fsw.Add(filepath.Dir(abs)); errAdd != nil {
		_ = fsw.Close()
		return nil, errors.NewIOError("failed to watch directory", errAdd).WithContext("path", abs)
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, w.onChange)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}
