package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Reload is one attempt to re-read the watched file. Err is set when the new
// contents did not parse or validate; Config is then the defaults.
type Reload struct {
	Config Config
	Err    error
}

// Watcher re-loads a config file whenever it changes on disk. The directory
// is watched rather than the file so that editors replacing the file by
// rename are noticed.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Reloads chan Reload
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    abs,
		Reloads: make(chan Reload, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Reloads is closed once the loop has exited.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Reloads)

	// Reload once writes have been quiet for the debounce interval, so a
	// truncate followed by a write is read as a whole.
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			cfg, err := Load(w.path)
			w.send(Reload{Config: cfg, Err: err})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(Reload{Config: Default(), Err: err})
		case <-w.closeCh:
			return
		}
	}
}

// send delivers r unless the watcher is closing. When the channel is full the
// oldest pending reload is dropped so the newest one always gets through.
func (w *Watcher) send(r Reload) {
	for {
		select {
		case w.Reloads <- r:
			return
		case <-w.closeCh:
			return
		default:
		}
		select {
		case <-w.Reloads:
		default:
		}
	}
}
