package renamer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// scriptExtensions are the file types the watcher rewrites.
var scriptExtensions = map[string]bool{
	".ps1":  true,
	".psm1": true,
	".psd1": true,
}

// Watcher rewrites script files in a directory as they change.
type Watcher struct {
	Rewriter *Rewriter
	Dir      string
	Logger   *slog.Logger

	// OnResult, when set, receives every rewrite result (used by the CLI
	// to emit status records).
	OnResult func(*Result)
}

// Watch blocks until ctx is cancelled, rewriting any script file written or
// created under the directory.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.Dir, err)
	}

	w.Logger.Info("watching for script changes", "dir", w.Dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write != fsnotify.Write && event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !scriptExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}

			res, err := w.Rewriter.RewriteFile(event.Name)
			if err != nil {
				w.Logger.Error("rewrite failed", "file", event.Name, "error", err)
				continue
			}
			if res.Changed {
				w.Logger.Info("rewrote deprecated names", "file", event.Name, "renames", len(res.Renames))
			}
			if w.OnResult != nil {
				w.OnResult(res)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Error("watch error", "error", err)
		}
	}
}
