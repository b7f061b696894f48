package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/legisview/internal/loader"
	"github.com/hyperjump/legisview/internal/render"
	"github.com/hyperjump/legisview/internal/server"
	"github.com/hyperjump/legisview/internal/session"
	"github.com/hyperjump/legisview/internal/watcher"
	"github.com/hyperjump/legisview/pkg/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web viewer",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, resolvedConfigPath, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	debugMode := cfg.Debug || debugFlag
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		return err
	}
	defer components.Close()

	renderer, err := render.New(cfg.Templates.Dir, logger)
	if err != nil {
		return err
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Templates.Dir != "" {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		w := watcher.New(cfg.Templates.Dir, []string{".html"}, func() {
			if err := renderer.Reload(); err != nil {
				logger.Warn("template reload failed", zap.Error(err))
				return
			}
			logger.Info("templates reloaded", zap.String("dir", cfg.Templates.Dir))
		}, watchOpts...)
		if err := w.Start(watchCtx); err != nil {
			return err
		}
		defer w.Stop()
	}

	sessions, err := session.NewManager(session.Options{
		CookieName: cfg.Session.CookieName,
		Capacity:   cfg.Session.Capacity,
		MaxAge:     cfg.Session.MaxAge,
		Secure:     secureCookies(&cfg.Server),
	}, components.Metrics, logger)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(
		loader.New(components.Client, components.Metrics, logger),
		renderer,
		sessions,
		components.Metrics,
		&cfg.Server,
		logger,
	)
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
	case err := <-errc:
		return err
	}

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}
