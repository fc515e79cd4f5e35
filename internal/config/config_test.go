package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Backend != "sqlite" {
		t.Errorf("backend = %s, want sqlite", cfg.Backend)
	}
	if cfg.SyncLookbackDays != 30 {
		t.Errorf("lookback = %d, want 30", cfg.SyncLookbackDays)
	}
	if cfg.AlertCheckInterval != time.Hour {
		t.Errorf("alert interval = %v, want 1h", cfg.AlertCheckInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("SYNC_LOOKBACK_DAYS", "90")
	t.Setenv("ALERT_CHECK_INTERVAL", "30m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Backend != "memory" {
		t.Errorf("backend = %s", cfg.Backend)
	}
	if cfg.SyncLookbackDays != 90 {
		t.Errorf("lookback = %d", cfg.SyncLookbackDays)
	}
	if cfg.AlertCheckInterval != 30*time.Minute {
		t.Errorf("alert interval = %v", cfg.AlertCheckInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("SYNC_LOOKBACK_DAYS", "ninety")
	t.Setenv("ALERT_CHECK_INTERVAL", "soon")

	cfg := Load()
	if cfg.SyncLookbackDays != 30 {
		t.Errorf("lookback = %d, want default 30", cfg.SyncLookbackDays)
	}
	if cfg.AlertCheckInterval != time.Hour {
		t.Errorf("alert interval = %v, want default 1h", cfg.AlertCheckInterval)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Load()
	cfg.Backend = "postgres"
	cfg.AMQPURL = "http://localhost"
	cfg.SyncLookbackDays = 0
	cfg.LogLevel = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"data backend", "AMQP URL scheme", "sync lookback", "log level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}

func TestValidateSQLitePathRequired(t *testing.T) {
	cfg := Load()
	cfg.SQLiteDBPath = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty sqlite path")
	}

	cfg.Backend = "memory"
	if err := cfg.Validate(); err != nil {
		t.Errorf("memory backend should not need a db path: %v", err)
	}
}
