package formstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// LoadDir reads every *.json form document in dir into the store. Files
// that fail to parse are skipped with a log line; the loader never aborts
// the startup for a single bad file.
func LoadDir(s *Store, dir string, logger *slog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f, err := readFormFile(path)
		if err != nil {
			logger.Warn("skip seed file", "path", path, "err", err)
			continue
		}
		s.Put(f)
	}
	return nil
}

func readFormFile(path string) (Form, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Form{}, err
	}
	var f Form
	if err := json.Unmarshal(b, &f); err != nil {
		return Form{}, err
	}
	if f.ID == "" {
		f.ID = "f-" + strings.TrimSuffix(filepath.Base(path), ".json")
	}
	return f, nil
}

// Watcher watches a directory of form JSON files and applies changes to the
// store while the server runs.
type Watcher struct {
	dir      string
	store    *Store
	debounce time.Duration
	logger   *slog.Logger

	stopOnce sync.Once
	stopFn   context.CancelFunc
}

// NewWatcher returns a watcher over dir applying changes to s.
func NewWatcher(dir string, s *Store, debounce time.Duration, logger *slog.Logger) *Watcher {
	return &Watcher{dir: dir, store: s, debounce: debounce, logger: logger}
}

// Start begins watching. Returns a stop function.
func (w *Watcher) Start(ctx context.Context) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	w.stopFn = cancel

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		cancel()
		return nil, err
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		cancel()
		return nil, err
	}

	changes := make(chan string, 256)
	go func() {
		defer fw.Close()
		for {
			select {
			case ev := <-fw.Events:
				if !strings.HasSuffix(ev.Name, ".json") {
					continue
				}
				changes <- ev.Name
			case err := <-fw.Errors:
				if err != nil {
					w.logger.Warn("fsnotify error", "err", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(w.debounce)
		defer ticker.Stop()
		pending := map[string]struct{}{}
		for {
			select {
			case path := <-changes:
				pending[path] = struct{}{}
			case <-ticker.C:
				for path := range pending {
					delete(pending, path)
					f, err := readFormFile(path)
					if err != nil {
						w.logger.Warn("reload form file", "path", path, "err", err)
						continue
					}
					w.store.Put(f)
					w.logger.Info("reloaded form", "id", f.ID, "path", path)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return w.Stop, nil
}

// Stop terminates the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		if w.stopFn != nil {
			w.stopFn()
		}
	})
}
