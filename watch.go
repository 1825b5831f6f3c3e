package notebook

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/darkhorsekelly/notebook/content"
)

// WatchContent invalidates cache whenever a content file in dir is created,
// written, renamed or removed. The watcher stops when ctx is done.
func WatchContent(ctx context.Context, dir string, cache *ContentCache, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return err
	}
	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Ext(event.Name) != content.Ext || event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
					continue
				}
				logger.DebugContext(ctx, "content changed", "file", event.Name, "op", event.Op.String())
				cache.Invalidate()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.WarnContext(ctx, "Error watching content", "err", err)
			}
		}
	}()
	return nil
}
