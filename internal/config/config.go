// Package config loads service configuration from defaults, an optional YAML
// file, a .env file and WATERWORKS_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/waterworks/records/internal/utils"
)

const EnvPrefix = "WATERWORKS"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port              string        `mapstructure:"port"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	ExposeErrorDetail bool          `mapstructure:"expose_error_detail"`
}

type DatabaseConfig struct {
	Driver      string        `mapstructure:"driver"`
	DSN         string        `mapstructure:"dsn"`
	MaxOpen     int           `mapstructure:"max_open"`
	MaxIdle     int           `mapstructure:"max_idle"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
	AutoMigrate bool          `mapstructure:"auto_migrate"`
}

type AuthConfig struct {
	AccessSecret  string `mapstructure:"access_secret"`
	RefreshSecret string `mapstructure:"refresh_secret"`
	AccessTTL     string `mapstructure:"access_ttl"`
	RefreshTTL    string `mapstructure:"refresh_ttl"`
	BcryptCost    int    `mapstructure:"bcrypt_cost"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type JobsConfig struct {
	OverdueSchedule  string `mapstructure:"overdue_schedule"`
	OverdueGraceDays int    `mapstructure:"overdue_grace_days"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SetDefaults registers every key so that AutomaticEnv can override it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.expose_error_detail", false)

	v.SetDefault("database.driver", "pgx")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open", 25)
	v.SetDefault("database.max_idle", 25)
	v.SetDefault("database.max_lifetime", 5*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("auth.access_secret", "")
	v.SetDefault("auth.refresh_secret", "")
	v.SetDefault("auth.access_ttl", "15m")
	v.SetDefault("auth.refresh_ttl", "168h")
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("jobs.overdue_schedule", "@hourly")
	v.SetDefault("jobs.overdue_grace_days", 14)

	v.SetDefault("metrics.enabled", true)
}

// Load reads configuration into v and decodes it. A missing config file or
// .env file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/waterworks/")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// ValidateDatabase checks the settings every command that touches the
// database needs.
func (c *Config) ValidateDatabase() error {
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required (WATERWORKS_DATABASE_DSN)")
	}
	switch c.Database.Driver {
	case "pgx", "sqlite3":
	default:
		return fmt.Errorf("database.driver must be pgx or sqlite3, got %q", c.Database.Driver)
	}
	return nil
}

// ValidateServer checks the settings required to serve HTTP.
func (c *Config) ValidateServer() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if c.Auth.AccessSecret == "" || c.Auth.RefreshSecret == "" {
		return errors.New("auth.access_secret and auth.refresh_secret are required")
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return errors.New("auth.access_secret and auth.refresh_secret must differ")
	}
	if _, err := c.AccessTTL(); err != nil {
		return fmt.Errorf("auth.access_ttl: %w", err)
	}
	if _, err := c.RefreshTTL(); err != nil {
		return fmt.Errorf("auth.refresh_ttl: %w", err)
	}
	if c.Jobs.OverdueGraceDays < 0 {
		return errors.New("jobs.overdue_grace_days must not be negative")
	}
	return nil
}

func (c *Config) AccessTTL() (time.Duration, error) {
	return utils.ParseTTL(c.Auth.AccessTTL, 15*time.Minute)
}

func (c *Config) RefreshTTL() (time.Duration, error) {
	return utils.ParseTTL(c.Auth.RefreshTTL, 7*24*time.Hour)
}
