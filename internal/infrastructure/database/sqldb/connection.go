// Package sqldb manages the relational store behind the repositories.  Two
// engines are supported: an embedded SQLite database (in-memory or
// file-backed, the mode the desktop deployment runs in) and PostgreSQL for
// server deployments.  Everything above this package talks plain
// database/sql and does not know which engine is configured.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
	"github.com/estatehub/propevd/pkg/errors"
)

// Driver names accepted in Config.Driver.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config holds the connection parameters for the relational store.
type Config struct {
	// Driver selects the engine: "sqlite3" or "postgres".
	Driver string `mapstructure:"driver"`

	// Path is the SQLite database file.  Empty means a process-private
	// in-memory database, the mode the test suites and the demo server use.
	Path string `mapstructure:"path"`

	// PostgreSQL parameters, ignored for SQLite.
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
	SSLMode  string `mapstructure:"ssl_mode"`

	// Pool tunables.
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`

	// MigrationsDir is the directory holding the engine's migration files.
	MigrationsDir string `mapstructure:"migrations_dir"`
}

// Connection manages the database connection pool.
type Connection struct {
	db     *sql.DB
	cfg    Config
	logger logging.Logger
	once   sync.Once
}

// sqlOpen is a seam for tests.
var sqlOpen = func(driverName, dataSourceName string) (*sql.DB, error) {
	return sql.Open(driverName, dataSourceName)
}

// NewConnection opens a pooled connection to the configured engine and
// verifies it with a ping.  Unavailability surfaces as a store fault.
func NewConnection(cfg Config, log logging.Logger) (*Connection, error) {
	driver, dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, errors.StoreFault(err, "failed to open database connection")
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	} else if cfg.Driver == DriverSQLite && cfg.Path == "" {
		// A shared-cache in-memory SQLite database still serializes writers;
		// a single pooled connection avoids lock contention entirely.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
	}

	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	} else {
		db.SetMaxIdleConns(5)
	}

	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.StoreFault(err, "database connection failed")
	}

	log.Info("connected to database",
		logging.String("driver", cfg.Driver),
		logging.String("target", describeTarget(cfg)),
	)

	return &Connection{db: db, cfg: cfg, logger: log}, nil
}

// NewConnectionWithDB wraps an existing sql.DB (for tests).
func NewConnectionWithDB(db *sql.DB, log logging.Logger) *Connection {
	return &Connection{db: db, logger: log}
}

// DB returns the underlying sql.DB instance.
func (c *Connection) DB() *sql.DB {
	return c.db
}

// HealthCheck verifies the connection is still usable.
func (c *Connection) HealthCheck(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return errors.StoreFault(err, "database health check failed")
	}
	return nil
}

// Stats returns pool statistics.
func (c *Connection) Stats() sql.DBStats {
	return c.db.Stats()
}

// Close closes the pool.  Safe to call more than once.
func (c *Connection) Close() error {
	var err error
	c.once.Do(func() {
		err = c.db.Close()
		if err == nil {
			c.logger.Info("closed database connection")
		} else {
			c.logger.Error("failed to close database connection", logging.Err(err))
		}
	})
	return err
}

// buildDSN constructs the driver name and data source for cfg.
func buildDSN(cfg Config) (driver, dsn string, err error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		if cfg.Path == "" {
			return "sqlite3", "file::memory:?cache=shared&_foreign_keys=on", nil
		}
		return "sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", cfg.Path), nil

	case DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.User, cfg.Password),
			Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Path:   cfg.DBName,
		}
		q := u.Query()
		if cfg.SSLMode != "" {
			q.Set("sslmode", cfg.SSLMode)
		} else {
			q.Set("sslmode", "disable")
		}
		u.RawQuery = q.Encode()
		return "pgx", u.String(), nil

	default:
		return "", "", errors.Newf(errors.KindInternal, "unsupported database driver %q", cfg.Driver)
	}
}

// describeTarget renders the connection target for log output, without
// credentials.
func describeTarget(cfg Config) string {
	if cfg.Driver == DriverPostgres {
		return fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.DBName)
	}
	if cfg.Path == "" {
		return ":memory:"
	}
	return cfg.Path
}
