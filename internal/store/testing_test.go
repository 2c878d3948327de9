package store

import (
	"io"
	"log/slog"
	"testing"

	"github.com/aethra/taxonomy/internal/config"
	"github.com/aethra/taxonomy/internal/database"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: database.DriverSQLite, Path: ":memory:"}, discardLogger())
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, discardLogger()))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return New(db)
}
