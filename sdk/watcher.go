package sdk

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher re-applies a schema document whenever the file changes.
type FileWatcher struct {
	svc    *Service
	formID string
	path   string
	format Format
	cancel context.CancelFunc
}

// StartFileWatcher watches path and applies it as the form's schema on every
// write, debounced to at most one apply per interval. stop releases the
// watcher.
func (s *Service) StartFileWatcher(ctx context.Context, formID, path string, format Format, interval time.Duration) (stop func(), err error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// watch the directory: editors replace files via rename, which drops a
	// watch registered on the file itself
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	cctx, cancel := context.WithCancel(ctx)
	w := &FileWatcher{svc: s, formID: formID, path: path, format: format, cancel: cancel}
	go w.loop(cctx, fw, interval)
	return func() {
		cancel()
		fw.Close()
	}, nil
}

func (w *FileWatcher) loop(ctx context.Context, fw *fsnotify.Watcher, interval time.Duration) {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	dirty := false
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				dirty = true
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.svc.logger.Warnf("watch error: %v", err)
		case <-ticker.C:
			if !dirty {
				continue
			}
			dirty = false
			if err := w.apply(ctx); err != nil {
				w.svc.logger.Warnf("apply %s: %v", w.path, err)
			}
		}
	}
}

func (w *FileWatcher) apply(ctx context.Context) error {
	f, err := os.Open(w.path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = w.svc.ApplySchema(ctx, w.formID, f, w.format)
	return err
}
