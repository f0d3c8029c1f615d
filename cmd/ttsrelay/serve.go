package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/ttsrelay/internal/config"
	"github.com/ekisa-team/ttsrelay/internal/env"
	"github.com/ekisa-team/ttsrelay/internal/logger"
	"github.com/ekisa-team/ttsrelay/internal/server/http"
	"github.com/ekisa-team/ttsrelay/internal/service"
	"github.com/ekisa-team/ttsrelay/internal/upstream"
	"github.com/ekisa-team/ttsrelay/internal/xfs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP relay (default command)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	slog.SetDefault(
		logger.New(env.FromEnv(),
			logger.WithLogToFile(logToFile),
			logger.WithLogFile(logFile),
		),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var current atomic.Pointer[service.TTS]

	cfg, closeWatcher, err := loadConfig(configFile, func(cfg *config.Config) {
		catalog, err := cfg.Catalog()
		if err != nil {
			slog.Error("Failed to rebuild voice catalog", "error", err)
			return
		}
		if svc := current.Load(); svc != nil {
			svc.SetCatalog(catalog)
		}
		slog.Info("Voice catalog reloaded", "locales", catalog.Locales())
		slog.Warn("Changes to server and upstream settings take effect after a restart")
	})
	if err != nil {
		return err
	}
	defer closeWatcher()

	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	client, err := upstream.NewClient(cfg.UpstreamClientConfig())
	if err != nil {
		return fmt.Errorf("failed to create speech client: %w", err)
	}

	svc := service.NewTTS(client, catalog)
	current.Store(svc)

	srv := http.NewServer(svc, http.Options{
		Addr:        cfg.Addr(),
		FrontendDir: cfg.Server.FrontendDir,
		Version:     Version,
	})

	slog.Info("Relay configured",
		"endpoint", client.Endpoint(),
		"frontend", cfg.Server.FrontendDir,
		"default_locale", catalog.DefaultLocale(),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}

	return <-errCh
}

// loadConfig reads the configuration at path. When the file exists it is
// watched and onReload receives every valid revision.
func loadConfig(path string, onReload func(*config.Config)) (*config.Config, func(), error) {
	if !xfs.FileExists(xfs.ExpandTilde(path)) {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Config file not found, using defaults", "config", path)
		return cfg, func() {}, nil
	}

	watcher, err := config.NewWatcher(path, func(cfg *config.Config, err error) {
		if err != nil {
			slog.Error("Failed to reload config", "error", err)
			return
		}
		onReload(cfg)
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("Config loaded successfully", "config", path)

	return watcher.Snapshot(), func() { _ = watcher.Close() }, nil
}
