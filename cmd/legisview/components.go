package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/legisview/internal/config"
	"github.com/hyperjump/legisview/internal/metrics"
	"github.com/hyperjump/legisview/internal/storage"
	"github.com/hyperjump/legisview/internal/upstream"
)

// Components holds the shared dependencies built from config.
type Components struct {
	Cache   storage.Cache
	Client  *upstream.Client
	Metrics *metrics.Metrics
}

// Close releases resources.
func (c *Components) Close() {
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	c := &Components{
		Cache:   storage.NopCache{},
		Metrics: metrics.New(),
	}
	if cfg.Cache.Enabled {
		cache, err := storage.NewSQLiteCache(cfg.Cache.DatabasePath, cfg.Cache.TTL)
		if err != nil {
			return nil, fmt.Errorf("failed to open document cache: %w", err)
		}
		c.Cache = cache
		logger.Info("document cache enabled",
			zap.String("path", cfg.Cache.DatabasePath),
			zap.Duration("ttl", cfg.Cache.TTL),
		)
	}
	client, err := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout,
		upstream.WithCache(c.Cache),
		upstream.WithMetrics(c.Metrics),
		upstream.WithLogger(logger),
	)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Client = client
	return c, nil
}

// secureCookies reports whether the site is served over https.
func secureCookies(cfg *config.ServerConfig) bool {
	return strings.HasPrefix(strings.ToLower(cfg.PublicURL), "https://")
}
