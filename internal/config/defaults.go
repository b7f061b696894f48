package config

import "time"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = "http://localhost:8000"
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = 10 * time.Second
	}
	if cfg.Cache.DatabasePath == "" {
		cfg.Cache.DatabasePath = "/usr/local/var/legisview/data/cache.db"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 24 * time.Hour
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "legisview_session"
	}
	if cfg.Session.Capacity == 0 {
		cfg.Session.Capacity = 10000
	}
	if cfg.Session.MaxAge == 0 {
		cfg.Session.MaxAge = 12 * time.Hour
	}
}
