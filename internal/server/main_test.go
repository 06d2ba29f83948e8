package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/config"
	"quill/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             "0",
		Env:              "test",
		DBDriver:         config.DriverSQLite,
		SQLitePath:       ":memory:",
		AllowedOrigins:   "*",
		CascadeMode:      config.CascadeTransactional,
		BcryptCost:       4,
		EnableTestRoutes: true,
	}
}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) (*fiber.App, *gorm.DB) {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}
	db := testutil.NewSQLiteDB(t)
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)
	return s.App(), db
}

// do sends a request with an optional JSON body and returns the status and raw body.
func do(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func errorOf(t *testing.T, raw []byte) string {
	t.Helper()
	return decode[map[string]any](t, raw)["error"].(string)
}

func seedFixture(t *testing.T, app *fiber.App) SeedResponse {
	t.Helper()
	status, raw := do(t, app, http.MethodPost, "/api/test/seed", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	return decode[SeedResponse](t, raw)
}
