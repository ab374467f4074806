// internal/database/database.go
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gator-threads/internal/utils"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Supported driver names, as registered with database/sql.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// PoolConfig sizes the shared connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPoolConfig mirrors the pool settings used for PostgreSQL in production.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// DB owns the connection pool to the relational store. It is safe for
// concurrent use; every request shares the same pool.
type DB struct {
	conn   *sqlx.DB
	driver string
}

// Open connects to the store and verifies the connection with a ping.
func Open(ctx context.Context, driver, dsn string, pool PoolConfig) (*DB, error) {
	switch driver {
	case DriverPostgres:
	case DriverSQLite:
		dsn = withSQLiteForeignKeys(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}

	conn.SetMaxOpenConns(pool.MaxOpenConns)
	conn.SetMaxIdleConns(pool.MaxIdleConns)
	conn.SetConnMaxLifetime(pool.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	logrus.WithFields(logrus.Fields{
		"driver":         driver,
		"max_open_conns": pool.MaxOpenConns,
		"max_idle_conns": pool.MaxIdleConns,
	}).Info("connected to database")

	return &DB{conn: conn, driver: driver}, nil
}

// Driver returns the database/sql driver name the pool was opened with.
func (d *DB) Driver() string {
	return d.driver
}

// Ping checks that the store is reachable.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.conn.PingContext(ctx); err != nil {
		return utils.NewAppError(utils.ErrUnavailable, "database is unreachable", err)
	}
	return nil
}

// Close closes the pool. In-flight queries must be drained by the caller first.
func (d *DB) Close() error {
	logrus.WithField("driver", d.driver).Info("closing database connection pool")
	return d.conn.Close()
}

// Query runs one parameterized statement and scans every returned row into
// dest, which must be a pointer to a slice. Placeholders are written as '?'
// and rebound for the driver, so values are never spliced into the SQL text.
// SELECT, INSERT ... RETURNING and DELETE ... RETURNING all go through here.
func (d *DB) Query(ctx context.Context, dest interface{}, statement string, args ...interface{}) error {
	start := time.Now()
	err := d.conn.SelectContext(ctx, dest, d.conn.Rebind(statement), args...)

	entry := logrus.WithFields(logrus.Fields{
		"statement": statement,
		"duration":  time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Debug("statement failed")
		return storeError(err)
	}
	entry.Debug("statement executed")
	return nil
}

// storeError classifies a driver error. Integrity-constraint failures from
// either driver get ErrConstraint, everything else is ErrDatabase.
func storeError(err error) *utils.AppError {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return utils.NewAppError(utils.ErrConstraint, "constraint violation", err)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		return utils.NewAppError(utils.ErrConstraint, "constraint violation", err)
	}

	return utils.NewAppError(utils.ErrDatabase, "query failed", err)
}

// wrapError keeps the classification of a store error and replaces its
// message with one describing the failed operation.
func wrapError(err error, message string) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return utils.NewAppError(appErr.Code, message, appErr.Origin)
	}
	return utils.NewAppError(utils.ErrDatabase, message, err)
}

// withSQLiteForeignKeys turns on foreign key enforcement, which SQLite leaves
// off per connection unless asked.
func withSQLiteForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}
