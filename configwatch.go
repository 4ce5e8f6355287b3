package worldview

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads a TOML config file whenever it changes on disk and
// delivers each successfully parsed Config on a channel. A file that fails to
// parse is logged and skipped; the previous config stays in effect.
//
// The parent directory is watched rather than the file, so editors that save
// by renaming a temporary file over the original are picked up.
type ConfigWatcher struct {
	path    string
	logger  *log.Logger
	watcher *fsnotify.Watcher
	configs chan Config
	done    chan struct{}
}

// NewConfigWatcher starts watching path.
func NewConfigWatcher(path string, logger *log.Logger) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if logger == nil {
		logger = defaultLogger()
	}
	w := &ConfigWatcher{
		path:    abs,
		logger:  logger,
		watcher: fw,
		configs: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Configs returns the channel of reloaded configs. Only the newest pending
// config is kept; it is closed after Close.
func (w *ConfigWatcher) Configs() <-chan Config { return w.configs }

// Close stops watching.
func (w *ConfigWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *ConfigWatcher) run() {
	defer close(w.done)
	defer close(w.configs)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "err", err)
		}
	}
}

func (w *ConfigWatcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", "path", w.path, "err", err)
		return
	}
	w.logger.Info("config reloaded", "path", w.path)
	// Drop a config nobody has picked up yet.
	select {
	case <-w.configs:
	default:
	}
	w.configs <- cfg
}
