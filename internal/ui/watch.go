package ui

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// PlaylistFileChangedMsg is sent when the playlist file changes on disk
type PlaylistFileChangedMsg struct {
	Path string
}

// fileWatcher follows a single file. The parent directory is watched so
// editors that replace the file by rename are still seen.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	mu   sync.Mutex
	dir  string
	path string
}

func newFileWatcher(logger *slog.Logger) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &fileWatcher{watcher: w, logger: logger}, nil
}

// Watch switches the watched file to path. An empty path stops watching.
func (w *fileWatcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		path = abs
	}
	if path == w.path {
		return nil
	}

	dir := ""
	if path != "" {
		dir = filepath.Dir(path)
	}
	if dir != w.dir {
		if w.dir != "" {
			_ = w.watcher.Remove(w.dir)
		}
		if dir != "" {
			if err := w.watcher.Add(dir); err != nil {
				w.dir, w.path = "", ""
				return err
			}
		}
		w.dir = dir
	}
	w.path = path
	return nil
}

func (w *fileWatcher) target() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Wait blocks until the watched file changes
func (w *fileWatcher) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				target := w.target()
				if target == "" || filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					// Let the writer finish before the file is read
					time.Sleep(100 * time.Millisecond)
					return PlaylistFileChangedMsg{Path: target}
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				w.logger.Warn("playlist watch error", "error", err)
			}
		}
	}
}

func (w *fileWatcher) Close() error {
	return w.watcher.Close()
}
