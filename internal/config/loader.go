// Package config loads process settings from BOOKING_* environment variables
// and an optional booking.yaml file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/example/appointment-booking/internal/logging"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

const envPrefix = "BOOKING"

// Config captures the settings of the booking service.
type Config struct {
	HTTPPort         int
	StorageDriver    string
	SQLitePath       string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RedisPrefix      string
	AdminPassword    string
	OptimisticWrites bool
	LogLevel         slog.Level
}

// Load reads the configuration. Environment variables take precedence over
// booking.yaml, which is looked up in configPaths (the working directory when
// none are given). Every missing or invalid key is reported in one error.
func Load(configPaths ...string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	v.SetDefault("http_port", 8080)
	v.SetDefault("storage_driver", DriverSQLite)
	v.SetDefault("sqlite_path", "booking.db")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "booking:")
	v.SetDefault("admin_password", "admin123")
	v.SetDefault("optimistic_writes", true)
	v.SetDefault("log_level", "info")

	v.SetConfigName("booking")
	v.SetConfigType("yaml")
	if len(configPaths) == 0 {
		configPaths = []string{"."}
	}
	for _, path := range configPaths {
		v.AddConfigPath(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read booking.yaml: %w", err)
		}
	}

	var cfg Config
	missing := make([]string, 0, 2)
	invalid := make([]string, 0, 2)

	if port, err := cast.ToIntE(v.Get("http_port")); err != nil || port <= 0 || port > 65535 {
		invalid = append(invalid, envName("http_port"))
	} else {
		cfg.HTTPPort = port
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(v.GetString("storage_driver")))
	switch cfg.StorageDriver {
	case DriverSQLite:
		if cfg.SQLitePath = strings.TrimSpace(v.GetString("sqlite_path")); cfg.SQLitePath == "" {
			missing = append(missing, envName("sqlite_path"))
		}
	case DriverRedis:
		if cfg.RedisAddr = strings.TrimSpace(v.GetString("redis_addr")); cfg.RedisAddr == "" {
			missing = append(missing, envName("redis_addr"))
		}
		cfg.RedisPassword = v.GetString("redis_password")
		cfg.RedisPrefix = v.GetString("redis_prefix")
		if db, err := cast.ToIntE(v.Get("redis_db")); err != nil || db < 0 {
			invalid = append(invalid, envName("redis_db"))
		} else {
			cfg.RedisDB = db
		}
	case DriverMemory:
	case "":
		missing = append(missing, envName("storage_driver"))
	default:
		invalid = append(invalid, envName("storage_driver"))
	}

	if cfg.AdminPassword = v.GetString("admin_password"); strings.TrimSpace(cfg.AdminPassword) == "" {
		missing = append(missing, envName("admin_password"))
	}

	if optimistic, err := cast.ToBoolE(v.Get("optimistic_writes")); err != nil {
		invalid = append(invalid, envName("optimistic_writes"))
	} else {
		cfg.OptimisticWrites = optimistic
	}

	if level, err := logging.ParseLevel(v.GetString("log_level")); err != nil {
		invalid = append(invalid, envName("log_level"))
	} else {
		cfg.LogLevel = level
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid configuration values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(key)
}
