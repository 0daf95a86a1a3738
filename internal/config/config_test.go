package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/Champion/internal/ranking"
)

var envVars = []string{
	"CHAMPION_PORT", "CHAMPION_METRICS_PORT", "CHAMPION_ADMIN_TOKEN",
	"CHAMPION_DATABASE_URL", "CHAMPION_HERMES_URL", "CHAMPION_TIE_POLICY",
	"CHAMPION_MAX_COMPETITORS", "CHAMPION_STATS_INTERVAL_MS",
	"CHAMPION_LOG_LEVEL", "CHAMPION_LOG_FORMAT",
}

// clearEnv unsets every CHAMPION_ variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Database.URL != "" {
		t.Errorf("expected empty database URL, got %s", cfg.Database.URL)
	}
	if cfg.Hermes.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Hermes.URL)
	}
	if cfg.TiePolicy() != ranking.TiePolicyStrict {
		t.Errorf("expected strict tie policy, got %s", cfg.TiePolicy())
	}
	if cfg.Ranking.MaxCompetitors != 10000 {
		t.Errorf("expected max competitors 10000, got %d", cfg.Ranking.MaxCompetitors)
	}
	if cfg.StatsInterval() != time.Minute {
		t.Errorf("expected stats interval 1m, got %s", cfg.StatsInterval())
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
server:
  port: 9000
  admin_token: secret
database:
  url: postgres://localhost/champion
ranking:
  tie_policy: retain
  max_competitors: 50
logging:
  format: text
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port to survive, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret" {
		t.Errorf("expected admin token from file, got %q", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://localhost/champion" {
		t.Errorf("unexpected database URL %s", cfg.Database.URL)
	}
	if cfg.TiePolicy() != ranking.TiePolicyRetain {
		t.Errorf("expected retain tie policy, got %s", cfg.TiePolicy())
	}
	if cfg.Ranking.MaxCompetitors != 50 {
		t.Errorf("expected max competitors 50, got %d", cfg.Ranking.MaxCompetitors)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected text format, got %s", cfg.Logging.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("CHAMPION_PORT", "9100")
	t.Setenv("CHAMPION_TIE_POLICY", "retain")
	t.Setenv("CHAMPION_MAX_COMPETITORS", "7")
	t.Setenv("CHAMPION_STATS_INTERVAL_MS", "250")
	t.Setenv("CHAMPION_LOG_LEVEL", "debug")
	t.Setenv("CHAMPION_HERMES_URL", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected env port 9100 to win over file, got %d", cfg.Server.Port)
	}
	if cfg.TiePolicy() != ranking.TiePolicyRetain {
		t.Errorf("expected retain, got %s", cfg.TiePolicy())
	}
	if cfg.Ranking.MaxCompetitors != 7 {
		t.Errorf("expected 7, got %d", cfg.Ranking.MaxCompetitors)
	}
	if cfg.StatsInterval() != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", cfg.StatsInterval())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug, got %s", cfg.Logging.Level)
	}
	if cfg.Hermes.URL != "" {
		t.Errorf("expected empty hermes URL to disable events, got %s", cfg.Hermes.URL)
	}
}

func TestLoadInvalidEnvNumberIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHAMPION_PORT", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8700 {
		t.Errorf("expected default port on bad env value, got %d", cfg.Server.Port)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown tie policy", "ranking:\n  tie_policy: lenient\n"},
		{"zero max competitors", "ranking:\n  max_competitors: 0\n"},
		{"negative stats interval", "ranking:\n  stats_interval_ms: -1\n"},
		{"unknown log format", "logging:\n  format: xml\n"},
		{"malformed yaml", "server: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
