package scenedit

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads a config file when it changes on disk. Reloads are
// handed over through Updates so the frame loop applies them on its own
// goroutine.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  Logger
	updates chan *Config
	done    chan struct{}
	once    sync.Once
}

// WatchConfig watches the directory holding path, since editors often
// replace a file rather than write it in place.
func WatchConfig(path string, logger Logger) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	w := &ConfigWatcher{
		path:    abs,
		watcher: fw,
		logger:  logger,
		updates: make(chan *Config, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *ConfigWatcher) Updates() <-chan *Config {
	return w.updates
}

func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *ConfigWatcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("config watcher: %v", err)
		}
	}
}

func (w *ConfigWatcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.logger.Warnf("config reload skipped: %v", err)
		return
	}
	// Keep only the newest pending config.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
		w.logger.Debugf("config reloaded from %s", w.path)
	case <-w.done:
	}
}
