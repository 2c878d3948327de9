package console

import (
	"bytes"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aethra/taxonomy/internal/api"
	"github.com/aethra/taxonomy/internal/client"
	"github.com/aethra/taxonomy/internal/config"
	"github.com/aethra/taxonomy/internal/database"
	"github.com/aethra/taxonomy/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newBackend starts the real API over an in-memory database
func newBackend(t *testing.T) (*store.Store, *client.API) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(config.DatabaseConfig{Driver: database.DriverSQLite, Path: ":memory:"}, discard())
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, discard()))
	s := store.New(db)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	srv := httptest.NewServer(api.SetupRouter(cfg, s, discard()))
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	a, err := client.NewAPI(srv.URL)
	require.NoError(t, err)
	return s, a
}

// newShell returns a shell whose prompts read the given lines
func newShell(t *testing.T, a *client.API, lines ...string) (*Shell, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	return New(a, in, &out, discard()), &out
}

func findBy[T any](items []T, pred func(T) bool) *T {
	for i := range items {
		if pred(items[i]) {
			return &items[i]
		}
	}
	return nil
}
