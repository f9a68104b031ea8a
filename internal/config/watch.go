package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// LoadFile loads the configuration file from the operating system's file system.
func LoadFile(path string) (Config, error) {
	return Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// Watcher reports modifications of a configuration file.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	changed chan struct{}
}

// Watch starts watching the given configuration file. The directory of the
// file is watched, so the file may not exist yet and editors replacing the
// file are handled too.
func Watch(path string) (*Watcher, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %q: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:    path,
		fsw:     fsw,
		changed: make(chan struct{}, 1),
	}

	go w.run()

	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			slog.Debug("Config file changed",
				slog.String("path", w.path),
				slog.String("op", event.Op.String()))

			// coalesce with a change that was not yet consumed
			select {
			case w.changed <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			slog.Warn("Watching config file failed", slog.String("error", err.Error()))
		}
	}
}

// Changed receives a value after the file was modified. Modifications
// that happen before the value is received are reported only once.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Load reads the current content of the watched file. Unlike LoadFile, a
// missing file is an error, as the file was removed after the start.
func (w *Watcher) Load() (Config, error) {
	buf, err := os.ReadFile(w.path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", w.path, err)
	}

	config, err := Parse(bytes.NewReader(buf))
	if err != nil {
		return Config{}, fmt.Errorf("config %q: %w", w.path, err)
	}

	return config, nil
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}
