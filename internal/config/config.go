package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "INVENTORY"

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"

	SeedDemo  = "demo"
	SeedEmpty = "empty"
)

type Config struct {
	HTTP    HTTPConfig
	Log     LogConfig
	Storage StorageConfig
	Gemini  GeminiConfig
	Insight InsightConfig
	Seed    string
}

type HTTPConfig struct {
	Addr string
}

type LogConfig struct {
	Level  string
	Format string
}

type StorageConfig struct {
	Backend     string
	Dir         string
	KeyPrefix   string
	DatabaseURL string
	Redis       RedisConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type InsightConfig struct {
	Timeout time.Duration
	Rate    float64
	Burst   int
}

// Load reads an optional .env file and inventory.{yaml,json,toml} config file,
// then the INVENTORY_* environment.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("inventory")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper binds defaults and environment variables onto v and builds a Config.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		HTTP: HTTPConfig{Addr: v.GetString("http_addr")},
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
		Storage: StorageConfig{
			Backend:     strings.ToLower(strings.TrimSpace(v.GetString("storage_backend"))),
			Dir:         v.GetString("storage_dir"),
			KeyPrefix:   v.GetString("storage_key_prefix"),
			DatabaseURL: v.GetString("database_url"),
			Redis: RedisConfig{
				Addr:     v.GetString("redis_addr"),
				Password: v.GetString("redis_password"),
				DB:       v.GetInt("redis_db"),
			},
		},
		Gemini: GeminiConfig{
			APIKey:  v.GetString("gemini_api_key"),
			Model:   v.GetString("gemini_model"),
			BaseURL: v.GetString("gemini_base_url"),
		},
		Insight: InsightConfig{
			Timeout: v.GetDuration("insight_timeout"),
			Rate:    v.GetFloat64("insight_rate"),
			Burst:   v.GetInt("insight_burst"),
		},
		Seed: strings.ToLower(strings.TrimSpace(v.GetString("seed"))),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("storage_backend", BackendFile)
	v.SetDefault("storage_dir", "./data")
	v.SetDefault("storage_key_prefix", "umkm_")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-3-flash-preview")
	v.SetDefault("gemini_base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("insight_timeout", 30*time.Second)
	v.SetDefault("insight_rate", 0.2)
	v.SetDefault("insight_burst", 2)
	v.SetDefault("seed", SeedDemo)
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile:
		if strings.TrimSpace(c.Storage.Dir) == "" {
			return errors.New("INVENTORY_STORAGE_DIR is required for the file backend")
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.New("INVENTORY_REDIS_ADDR is required for the redis backend")
		}
	case BackendPostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("INVENTORY_DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Seed != SeedDemo && c.Seed != SeedEmpty {
		return fmt.Errorf("unknown seed %q", c.Seed)
	}
	if c.Insight.Rate <= 0 || c.Insight.Burst <= 0 {
		return errors.New("insight rate and burst must be positive")
	}
	return nil
}
