package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const debounce = 100 * time.Millisecond

// Watcher reloads a settings file whenever it changes on disk. The
// directory is watched so editors that replace the file are noticed too.
type Watcher struct {
	Updates chan Settings
	Errors  chan error

	path    string
	watcher *fsnotify.Watcher
	closeCh chan struct{}
	once    sync.Once
}

func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}
	watcher := &Watcher{
		Updates: make(chan Settings, 1),
		Errors:  make(chan error, 1),
		path:    abs,
		watcher: w,
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Updates)
	defer close(w.Errors)

	// reload once the file has been quiet for the debounce period, so a
	// truncate followed by a write is read as one change
	var pending <-chan time.Time
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
			pending = time.After(debounce)
		case <-pending:
			pending = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	s, err := Load(w.path)
	if err != nil {
		w.report(err)
		return
	}
	log.Infof("config: reloaded %s", w.path)
	// keep only the newest settings
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- s:
	default:
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
		log.Warnf("config: dropping watch error %v", err)
	}
}
