package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// settleDelay collapses the burst of events a single save produces
const settleDelay = 100 * time.Millisecond

// Watch re-reads filename whenever it changes and sends configs that pass
// validation. Invalid reloads are logged and skipped, as are reads that find
// the file missing or empty mid-save. The channel is closed when ctx is done.
func Watch(ctx context.Context, filename string, logger *slog.Logger) (<-chan Config, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}

	filename = filepath.Clean(filename)
	// Editors often replace the file, so watch the directory
	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(filename))
	}

	out := make(chan Config)
	go func() {
		defer close(out)
		defer watcher.Close()

		var settle *time.Timer
		var settled <-chan time.Time
		defer func() {
			if settle != nil {
				settle.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filename {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				if settle == nil {
					settle = time.NewTimer(settleDelay)
				} else {
					settle.Stop()
					settle.Reset(settleDelay)
				}
				settled = settle.C
			case <-settled:
				settled = nil

				conf, err := load(filename, true)
				if errors.Is(err, errNotReady) {
					logger.Debug("config not ready, skipping reload", slog.String("file", filename))
					continue
				}
				if err != nil {
					logger.Warn("config reload rejected", slog.String("file", filename), slog.String("error", err.Error()))
					continue
				}
				logger.Info("config reloaded", slog.String("file", filename))

				select {
				case out <- conf:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("config watcher", slog.String("error", err.Error()))
			}
		}
	}()

	return out, nil
}
