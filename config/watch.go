package config

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounceDelay collapses the burst of events editors emit on save.
const debounceDelay = 250 * time.Millisecond

// Watch calls fn with the re-parsed file each time the file at path changes.
// It watches the parent directory so editors that replace the file on save
// are handled. Files that fail to parse are logged and skipped.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, logger zerolog.Logger, fn func(*File)) error {
	return watch(ctx, path, debounceDelay, logger, fn)
}

func watch(ctx context.Context, path string, delay time.Duration, logger zerolog.Logger, fn func(*File)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watch: %w", err)
	}
	defer w.Close()

	dir, file := filepath.Dir(path), filepath.Base(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("config watch %s: %w", dir, err)
	}
	logger.Debug().Str("dir", dir).Str("file", file).Msg("config watcher started")

	last, _ := os.ReadFile(path)
	timer := time.NewTimer(delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != file {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(delay)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Str("dir", dir).Msg("config watch error")

		case <-timer.C:
			b, err := os.ReadFile(path)
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("config read failed")
				continue
			}
			if bytes.Equal(b, last) {
				logger.Debug().Str("path", path).Msg("config unchanged; skipping reload")
				continue
			}
			f, err := Parse(path, b)
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("config parse failed")
				continue
			}
			last = b
			logger.Debug().Str("path", path).Msg("config reloaded")
			fn(f)
		}
	}
}
