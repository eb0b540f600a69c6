// Package config loads service settings from an optional YAML file, a .env
// file and LOAN_REPORT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LOAN_REPORT"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Assets    AssetsConfig    `mapstructure:"assets"`
	Fonts     FontsConfig     `mapstructure:"fonts"`
	Report    ReportConfig    `mapstructure:"report"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig allows Requests per client within Window.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// AssetsConfig locates the two seal images. Source is "file" or "http".
type AssetsConfig struct {
	Source        string        `mapstructure:"source"`
	Dir           string        `mapstructure:"dir"`
	BaseURL       string        `mapstructure:"base_url"`
	PrimarySeal   string        `mapstructure:"primary_seal"`
	SecondarySeal string        `mapstructure:"secondary_seal"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// FontsConfig points at TrueType files. Empty paths use the embedded Go fonts.
type FontsConfig struct {
	Regular string `mapstructure:"regular"`
	Bold    string `mapstructure:"bold"`
}

type ReportConfig struct {
	Locale string `mapstructure:"locale"`
	// Layout optionally replaces the built-in layout description.
	Layout string `mapstructure:"layout"`
}

// CacheConfig selects where loaded seal images are kept. Driver is "memory",
// "redis" or "none".
type CacheConfig struct {
	Driver        string        `mapstructure:"driver"`
	TTL           time.Duration `mapstructure:"ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 5)
	v.SetDefault("rate_limit.window", time.Minute)

	v.SetDefault("assets.source", "file")
	v.SetDefault("assets.dir", "assets")
	v.SetDefault("assets.base_url", "")
	v.SetDefault("assets.primary_seal", "seal1.png")
	v.SetDefault("assets.secondary_seal", "seal2.png")
	v.SetDefault("assets.timeout", 10*time.Second)

	v.SetDefault("fonts.regular", "")
	v.SetDefault("fonts.bold", "")

	v.SetDefault("report.locale", "ru")
	v.SetDefault("report.layout", "")

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
}

// Load reads .env (if present), then the YAML file at path (if not empty), and
// applies environment overrides on top.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0) {
		errs = append(errs, errors.New("rate_limit needs positive requests and window"))
	}

	switch c.Assets.Source {
	case "file":
		if c.Assets.Dir == "" {
			errs = append(errs, errors.New("assets.dir is required for the file source"))
		}
	case "http":
		if c.Assets.BaseURL == "" {
			errs = append(errs, errors.New("assets.base_url is required for the http source"))
		}
	default:
		errs = append(errs, fmt.Errorf("assets.source %q is not one of file, http", c.Assets.Source))
	}
	if c.Assets.PrimarySeal == "" || c.Assets.SecondarySeal == "" {
		errs = append(errs, errors.New("assets.primary_seal and assets.secondary_seal are required"))
	}
	if c.Assets.Timeout <= 0 {
		errs = append(errs, errors.New("assets.timeout must be positive"))
	}

	if c.Report.Locale == "" {
		errs = append(errs, errors.New("report.locale is required"))
	}

	switch c.Cache.Driver {
	case "memory", "none":
	case "redis":
		if c.Cache.RedisAddr == "" {
			errs = append(errs, errors.New("cache.redis_addr is required for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.driver %q is not one of memory, redis, none", c.Cache.Driver))
	}

	return errors.Join(errs...)
}
