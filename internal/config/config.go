package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Participant struct {
	Name        string `toml:"name"`
	DisplayName string `toml:"display_name"`
	Pronoun     string `toml:"pronoun"`
	ImageURL    string `toml:"image_url"`
}

type Config struct {
	// set from the selected toml table, not read from the file
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	RunDBMigrations  bool   `toml:"run_db_migrations"`
	SeedAchievements bool   `toml:"seed_achievements"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	AllowedOrigins            []string `toml:"allowed_origins"`
	BulkUpdateRateLimitPerMin int      `toml:"bulk_update_rate_limit_per_min"`
	// MaxRequestBodyBytes caps request bodies, bulk updates included; 0 uses the default
	MaxRequestBodyBytes int64 `toml:"max_request_body_bytes"`
	// SnapshotCacheTTL is a duration string, e.g. "30s"
	SnapshotCacheTTL string `toml:"snapshot_cache_ttl"`

	// notifications
	NotificationsEnabled bool          `toml:"notifications_enabled"`
	GroupImageURL        string        `toml:"group_image_url"`
	Participants         []Participant `toml:"participants"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg, env = t.Development, "development"
	case "prod", "production":
		cfg, env = t.Production, "production"
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config table for env: %s", env)
	}
	cfg.Environment = env
	return cfg, nil
}

// Load reads the toml file at path and returns the config of the given env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return errors.New("port must be set")
	}
	if c.BulkUpdateRateLimitPerMin < 0 {
		return errors.New("bulk update rate limit must not be negative")
	}
	if c.MaxRequestBodyBytes < 0 {
		return errors.New("max request body bytes must not be negative")
	}
	if _, err := c.SnapshotTTL(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Participants))
	for _, p := range c.Participants {
		if p.Name == "" {
			return errors.New("participant name must be set")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate participant: %s", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// SnapshotTTL parses SnapshotCacheTTL; an empty value disables the snapshot cache.
func (c *Config) SnapshotTTL() (time.Duration, error) {
	if c.SnapshotCacheTTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.SnapshotCacheTTL)
	if err != nil {
		return 0, fmt.Errorf("parse snapshot cache ttl: %w", err)
	}
	if ttl < 0 {
		return 0, errors.New("snapshot cache ttl must not be negative")
	}
	return ttl, nil
}

// ParticipantNames keeps the configured order, which is also the grid column order.
func (c *Config) ParticipantNames() []string {
	names := make([]string, 0, len(c.Participants))
	for _, p := range c.Participants {
		names = append(names, p.Name)
	}
	return names
}
