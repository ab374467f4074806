package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newTestDB mirrors databasetest.New, which this package cannot import from
// its own tests.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := Open(context.Background(), DriverSQLite, dsn, PoolConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	require.NoError(t, db.InitializeTables(context.Background()))
	return db
}
