//go:build integration

package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "quill_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	return fmt.Sprintf("postgres://postgres:password@%s:%s/quill_test?sslmode=disable", host, port.Port())
}

func TestEndToEnd_Postgres(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := cache.NewClient(mr.Addr())
	require.NoError(t, err)

	cfg := testConfig()
	cfg.DBDriver = config.DriverPostgres
	cfg.DatabaseURL = startPostgres(t)

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	s, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)
	app := s.App()

	ds := seedFixture(t, app).Data
	john, jane := ds.Users[0], ds.Users[1]

	t.Run("published filter", func(t *testing.T) {
		_, raw := do(t, app, http.MethodGet, "/api/posts?published=true", nil)
		posts := decode[[]models.Post](t, raw)
		require.Len(t, posts, 2)
		assert.Equal(t, "First Post", posts[0].Title)
		assert.Equal(t, "Second Post", posts[1].Title)
	})

	t.Run("duplicate email on update", func(t *testing.T) {
		status, raw := do(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d", jane.ID), map[string]any{"email": john.Email})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "Email already exists", errorOf(t, raw))
	})

	t.Run("cached user is invalidated on update", func(t *testing.T) {
		status, _ := do(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", jane.ID), nil)
		require.Equal(t, http.StatusOK, status)
		assert.True(t, mr.Exists(cache.UserKey(jane.ID)))

		status, _ = do(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d", jane.ID), map[string]any{"name": "Jane S."})
		require.Equal(t, http.StatusOK, status)

		_, raw := do(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", jane.ID), nil)
		u := decode[models.User](t, raw)
		require.NotNil(t, u.Name)
		assert.Equal(t, "Jane S.", *u.Name)
	})

	t.Run("cascade", func(t *testing.T) {
		status, _ := do(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", john.ID), nil)
		require.Equal(t, http.StatusOK, status)

		_, raw := do(t, app, http.MethodGet, "/api/posts", nil)
		posts := decode[[]models.Post](t, raw)
		require.Len(t, posts, 1)
		assert.Equal(t, "Second Post", posts[0].Title)

		_, raw = do(t, app, http.MethodGet, "/api/comments", nil)
		assert.Empty(t, decode[[]models.Comment](t, raw))

		status, _ = do(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", john.ID), nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("readiness", func(t *testing.T) {
		status, _ := do(t, app, http.MethodGet, "/health/ready", nil)
		assert.Equal(t, http.StatusOK, status)
	})
}
