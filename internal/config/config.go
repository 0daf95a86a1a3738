package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Champion/internal/ranking"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Ranking  RankingConfig  `yaml:"ranking"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

// DatabaseConfig selects the store. An empty URL keeps everything in memory.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// HermesConfig points at the NATS server. An empty URL disables events.
type HermesConfig struct {
	URL string `yaml:"url"`
}

type RankingConfig struct {
	TiePolicy       string `yaml:"tie_policy"`
	MaxCompetitors  int    `yaml:"max_competitors"`
	StatsIntervalMs int    `yaml:"stats_interval_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.Ranking.StatsIntervalMs) * time.Millisecond
}

// TiePolicy returns the configured policy. Load has already validated it.
func (c *Config) TiePolicy() ranking.TiePolicy {
	p, err := ranking.ParseTiePolicy(c.Ranking.TiePolicy)
	if err != nil {
		return ranking.TiePolicyStrict
	}
	return p
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Ranking: RankingConfig{
			TiePolicy:       string(ranking.TiePolicyStrict),
			MaxCompetitors:  10000,
			StatsIntervalMs: 60000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := ranking.ParseTiePolicy(c.Ranking.TiePolicy); err != nil {
		return err
	}
	if c.Ranking.MaxCompetitors <= 0 {
		return fmt.Errorf("ranking.max_competitors must be positive, got %d", c.Ranking.MaxCompetitors)
	}
	if c.Ranking.StatsIntervalMs <= 0 {
		return fmt.Errorf("ranking.stats_interval_ms must be positive, got %d", c.Ranking.StatsIntervalMs)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CHAMPION_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("CHAMPION_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("CHAMPION_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("CHAMPION_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v, ok := os.LookupEnv("CHAMPION_HERMES_URL"); ok {
		// Set but empty disables events.
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("CHAMPION_TIE_POLICY"); v != "" {
		cfg.Ranking.TiePolicy = v
	}
	if v := os.Getenv("CHAMPION_MAX_COMPETITORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Ranking.MaxCompetitors = n
		}
	}
	if v := os.Getenv("CHAMPION_STATS_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Ranking.StatsIntervalMs = n
		}
	}
	if v := os.Getenv("CHAMPION_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CHAMPION_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
