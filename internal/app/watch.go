package app

import (
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// sourceWatcher watches the command directory and marks the registry for
// rebuild when a plugin source changes. It never touches the registry
// itself; the loop applies the rebuild at an iteration boundary.
type sourceWatcher struct {
	watcher *fsnotify.Watcher
}

// watchSources starts watching dir for plugin source changes.
func watchSources(dir string, pending *atomic.Bool, logger *Logger) (*sourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	sw := &sourceWatcher{watcher: watcher}
	go sw.run(pending, logger)
	return sw, nil
}

// run consumes watcher events until the watcher closes.
func (sw *sourceWatcher) run(pending *atomic.Bool, logger *Logger) {
	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".lua" || event.Op&relevant == 0 {
				continue
			}
			logger.Debug("source change: %s (%s)", filepath.Base(event.Name), event.Op)
			pending.Store(true)

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// Close stops the watcher.
func (sw *sourceWatcher) Close() error {
	return sw.watcher.Close()
}
