package panel

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
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

// backend is a real API server that records requests and can fail some of them
type backend struct {
	*httptest.Server
	store *store.Store
	api   *client.API

	mu       sync.Mutex
	requests []string
	failures map[string]int
}

func newBackend(t *testing.T) *backend {
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
	router := api.SetupRouter(cfg, s, discard())

	b := &backend{store: s, failures: map[string]int{}}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.requests = append(b.requests, key)
		status := b.failures[key]
		b.mu.Unlock()
		if status != 0 {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":"INTERNAL_ERROR","message":"boom","detail":"boom"}`))
			return
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(func() {
		b.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	b.api, err = client.NewAPI(b.URL)
	require.NoError(t, err)
	return b
}

// fail makes every request matching "METHOD /path" answer with status
func (b *backend) fail(key string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[key] = status
}

// reset forgets the recorded requests
func (b *backend) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
}

// count returns how many recorded requests start with prefix
func (b *backend) count(prefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func (b *backend) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

var (
	yes = ConfirmFunc(func(string) bool { return true })
	no  = ConfirmFunc(func(string) bool { return false })
)
