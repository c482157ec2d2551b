// Package config provides configuration loading, defaults, and validation
// for the property-evidence service.
package config

import (
	"fmt"
	"time"

	"github.com/estatehub/propevd/internal/infrastructure/database/sqldb"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
)

// Config is the root configuration for the service.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database sqldb.Config   `mapstructure:"database"`
	Log      logging.Config `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MetricsConfig holds the Prometheus exposition settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// Validate checks the configuration for values that would prevent the
// service from starting.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release, or test, got %q", c.Server.Mode)
	}
	switch c.Database.Driver {
	case sqldb.DriverSQLite, sqldb.DriverPostgres:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q",
			sqldb.DriverSQLite, sqldb.DriverPostgres, c.Database.Driver)
	}
	if c.Database.Driver == sqldb.DriverPostgres {
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required for the postgres driver")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database.db_name is required for the postgres driver")
		}
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("metrics.namespace is required when metrics are enabled")
	}
	return nil
}
