package sqldb

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
	"github.com/estatehub/propevd/pkg/errors"
)

// Migrator applies schema migrations to the connected engine.
type Migrator struct {
	db     *sql.DB
	driver string
	logger logging.Logger
}

// NewMigrator builds a migrator bound to the connection's engine.
func NewMigrator(conn *Connection, log logging.Logger) *Migrator {
	driver := conn.cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	return &Migrator{db: conn.db, driver: driver, logger: log}
}

// Up applies all pending migrations from the given directory.  Migration
// files are engine-specific, so the directory is expected to hold the
// variant matching the configured driver.
func (m *Migrator) Up(dir string) error {
	mg, err := m.instance(dir)
	if err != nil {
		return err
	}

	if err := mg.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.StoreFault(err, "failed to apply migrations")
	}

	version, dirty, err := mg.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return errors.StoreFault(err, "failed to read migration version")
	}

	m.logger.Info("schema migrations applied",
		logging.String("dir", dir),
		logging.Any("version", version),
		logging.Bool("dirty", dirty),
	)
	return nil
}

// Down rolls back a single migration step.
func (m *Migrator) Down(dir string) error {
	mg, err := m.instance(dir)
	if err != nil {
		return err
	}

	if err := mg.Steps(-1); err != nil && err != migrate.ErrNoChange {
		return errors.StoreFault(err, "failed to roll back migration")
	}

	m.logger.Info("rolled back one migration step", logging.String("dir", dir))
	return nil
}

func (m *Migrator) instance(dir string) (*migrate.Migrate, error) {
	var (
		drv  database.Driver
		name string
		err  error
	)
	switch m.driver {
	case DriverSQLite:
		name = "sqlite3"
		drv, err = migratesqlite.WithInstance(m.db, &migratesqlite.Config{})
	case DriverPostgres:
		name = "postgres"
		drv, err = migratepg.WithInstance(m.db, &migratepg.Config{})
	default:
		return nil, errors.Newf(errors.KindInternal, "unsupported database driver %q", m.driver)
	}
	if err != nil {
		return nil, errors.StoreFault(err, "failed to create migration driver")
	}

	mg, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), name, drv)
	if err != nil {
		return nil, errors.StoreFault(err, "failed to create migrator")
	}
	return mg, nil
}
