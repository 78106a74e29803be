// Package dbtest opens throwaway in-memory stores for tests
package dbtest

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sujalbistaa/campus-confessions/internal/db"
)

// Open returns a migrated in-memory SQLite connection closed on test cleanup.
// The pool is pinned to one connection so every query sees the same database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.Open("sqlite://:memory:", zerolog.Nop())
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

// Repo returns a ConfessionRepo over a fresh in-memory store.
func Repo(t testing.TB) *db.ConfessionRepo {
	t.Helper()
	return db.NewConfessionRepo(Open(t))
}
