package config

import (
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Errorf("HTTP.Port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "mysql")
	}
	if cfg.Database.MaxOpenConns != 10 {
		t.Errorf("Database.MaxOpenConns = %d, want 10", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.ReaderDSN != cfg.Database.WriterDSN {
		t.Errorf("ReaderDSN should default to WriterDSN, got %q", cfg.Database.ReaderDSN)
	}
	if cfg.Messaging.Kafka.Topic != "orders.events" {
		t.Errorf("Kafka.Topic = %q, want %q", cfg.Messaging.Kafka.Topic, "orders.events")
	}
	if cfg.Observability.PrometheusPath != "/metrics" {
		t.Errorf("PrometheusPath = %q, want %q", cfg.Observability.PrometheusPath, "/metrics")
	}
	if cfg.Cache.DefaultTTL != 5*time.Minute {
		t.Errorf("Cache.DefaultTTL = %v, want 5m", cfg.Cache.DefaultTTL)
	}
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("MESSAGING_ENABLED", "false")
	t.Setenv("OBS_PROMETHEUS_PATH", "metrics")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if cfg.HTTP.Port != 9999 {
		t.Errorf("HTTP.Port = %d, want 9999", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "sqlite")
	}
	if cfg.Database.MaxOpenConns != 3 {
		t.Errorf("Database.MaxOpenConns = %d, want 3", cfg.Database.MaxOpenConns)
	}
	if cfg.Cache.Driver != "noop" {
		t.Errorf("Cache.Driver = %q, want noop when cache disabled", cfg.Cache.Driver)
	}
	if cfg.Messaging.Driver != "noop" {
		t.Errorf("Messaging.Driver = %q, want noop when messaging disabled", cfg.Messaging.Driver)
	}
	if cfg.Observability.PrometheusPath != "/metrics" {
		t.Errorf("PrometheusPath = %q, want leading slash added", cfg.Observability.PrometheusPath)
	}
}

func TestNewRejectsUnknownCacheDriver(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "memcached")

	if _, err := New(); err == nil {
		t.Fatal("New() expected error for unsupported cache driver")
	}
}
