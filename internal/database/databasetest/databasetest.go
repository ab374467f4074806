// Package databasetest provides a throwaway SQLite store for tests.
package databasetest

import (
	"context"
	"fmt"
	"testing"

	"gator-threads/internal/database"

	"github.com/google/uuid"
)

// NewDSN returns the DSN of a private shared-cache in-memory database.
func NewDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
}

// New opens a private in-memory SQLite store with the schema applied. The
// pool is pinned to one connection so the in-memory database lives as long
// as the test.
func New(t testing.TB) *database.DB {
	t.Helper()

	db, err := database.Open(context.Background(), database.DriverSQLite, NewDSN(), database.PoolConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := db.InitializeTables(context.Background()); err != nil {
		t.Fatalf("failed to initialize test schema: %v", err)
	}
	return db
}
