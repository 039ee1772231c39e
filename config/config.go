package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	HTTPAddr    string `yaml:"http_addr"`

	Storage struct {
		Backend     string        `yaml:"backend"` // memory, sqlite, postgres, redis
		Key         string        `yaml:"key"`
		SQLitePath  string        `yaml:"sqlite_path"`
		DatabaseURL string        `yaml:"-"`
		RedisURL    string        `yaml:"-"`
		CacheTTL    time.Duration `yaml:"cache_ttl"`
	} `yaml:"storage"`

	ViewTTL    time.Duration `yaml:"view_ttl"`
	IDStrategy string        `yaml:"id_strategy"` // timestamp, uuid

	Discord struct {
		BotToken  string `yaml:"-"`
		ChannelID string `yaml:"channel_id"`
	} `yaml:"discord"`
}

func defaults() Config {
	var cfg Config
	cfg.Environment = "development"
	cfg.HTTPAddr = ":9090"
	cfg.Storage.Backend = "sqlite"
	cfg.Storage.Key = "reservations"
	cfg.Storage.SQLitePath = "data/reservations.db"
	cfg.ViewTTL = 30 * time.Minute
	cfg.IDStrategy = "timestamp"

	return cfg
}

// Load reads an optional .env file, then the YAML file named by
// CONFIG_FILE if set, then environment variables. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Environment, "ENV")
	setString(&c.HTTPAddr, "HTTP_ADDR")
	setString(&c.Storage.Backend, "STORAGE_BACKEND")
	setString(&c.Storage.Key, "STORAGE_KEY")
	setString(&c.Storage.SQLitePath, "SQLITE_PATH")
	setString(&c.Storage.DatabaseURL, "DATABASE_URL")
	setString(&c.Storage.RedisURL, "REDIS_URL")
	setString(&c.IDStrategy, "ID_STRATEGY")
	setString(&c.Discord.BotToken, "DISCORD_BOT_TOKEN")
	setString(&c.Discord.ChannelID, "DISCORD_CHANNEL_ID")

	if err := setDuration(&c.Storage.CacheTTL, "CACHE_TTL"); err != nil {
		return err
	}

	return setDuration(&c.ViewTTL, "VIEW_TTL")
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "memory":
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case "postgres":
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case "redis":
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	default:
		return fmt.Errorf("unsupported storage backend: %q", c.Storage.Backend)
	}

	if c.IDStrategy != "timestamp" && c.IDStrategy != "uuid" {
		return fmt.Errorf("unsupported id strategy: %q", c.IDStrategy)
	}

	if c.ViewTTL <= 0 {
		return fmt.Errorf("view ttl must be positive")
	}

	if c.Storage.CacheTTL < 0 {
		return fmt.Errorf("cache ttl cannot be negative")
	}

	return nil
}

func (c *Config) DiscordEnabled() bool {
	return c.Discord.BotToken != "" && c.Discord.ChannelID != ""
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %v: %w", key, err)
	}

	*dst = d
	return nil
}
