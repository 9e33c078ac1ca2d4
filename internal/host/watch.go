package host

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig watches the project config file and swaps in a freshly
// compiled grammar when it changes. It blocks until ctx is canceled. The
// parent directory is watched rather than the file itself, so editors
// that replace the file on save keep triggering events, and a config
// created after startup is picked up too.
func (s *Server) WatchConfig(ctx context.Context, path string) error {
	if path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	base := filepath.Base(path)
	s.logger.Info("watching config", "path", path)

	// Debounce: editors fire several events per save.
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("config changed", "file", event.Name, "op", event.Op.String())
				s.ReloadConfig()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("config watcher error", "error", err)
		}
	}
}

// ReloadConfig reloads the project config and swaps the grammar under
// lock. A broken config keeps the previous grammar and warns the client.
func (s *Server) ReloadConfig() {
	if err := s.loadProject(s.ProjectRoot()); err != nil {
		s.logger.Warn("config reload failed, keeping previous grammar", "error", err)
		s.sendNotification("window/showMessage", &ShowMessageParams{
			Type:    MessageTypeWarning,
			Message: "inklist: config reload failed: " + err.Error(),
		})
		return
	}

	grammar, _ := s.snapshot()
	s.logger.Info("config reloaded", "markers", grammar.Markers())
}
