package priority

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/security"
)

// watchDebounce collapses the bursts of events editors emit for one save.
const watchDebounce = 100 * time.Millisecond

// watchFile runs fn now and after every write to path. The parent directory
// is watched because many editors save by replacing the file.
func watchFile(ctx context.Context, path string, errOut io.Writer, fn func(ctx context.Context) error) error {
	abs, err := security.ResolveInputFile(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	run := func() {
		if err := fn(ctx); err != nil {
			fmt.Fprintln(errOut, cli.Warning(err.Error()))
		}
		fmt.Fprintln(errOut, cli.Muted(fmt.Sprintf("watching %s for changes (Ctrl+C to stop)", path)))
	}
	run()

	debounce := time.NewTimer(0)
	<-debounce.C

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(watchDebounce)

		case <-debounce.C:
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cli.Logger().Warn("file watcher error", "error", err)
		}
	}
}
