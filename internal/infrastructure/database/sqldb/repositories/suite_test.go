package repositories

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/estatehub/propevd/internal/infrastructure/database/sqldb"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
)

// Schema for the in-memory test database, the SQLite variant of the
// migrations under migrations/sqlite3.
const (
	clientDDL = `CREATE TABLE client (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		fullname TEXT NOT NULL,
		phone    TEXT NOT NULL
	)`

	propertyDDL = `CREATE TABLE property (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		area    REAL NOT NULL,
		price   REAL NOT NULL,
		type    TEXT NOT NULL,
		address TEXT NOT NULL
	)`

	contractDDL = `CREATE TABLE contract (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		clientid      INTEGER NOT NULL REFERENCES client (id) ON DELETE RESTRICT,
		propertyid    INTEGER NOT NULL REFERENCES property (id) ON DELETE RESTRICT,
		dateofsigning DATE NOT NULL
	)`
)

// newTestConn opens a private in-memory SQLite database with the full schema
// applied.  A single pooled connection keeps the database alive for the
// whole test.
func newTestConn(t *testing.T) *sqldb.Connection {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	for _, ddl := range []string{clientDDL, propertyDDL, contractDDL} {
		_, err := db.Exec(ddl)
		require.NoError(t, err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return sqldb.NewConnectionWithDB(db, logging.NewNopLogger())
}

func ptr(v int64) *int64 { return &v }
