package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotFoundError_Message(t *testing.T) {
	err := NewNotFoundError("User", 42)
	assert.Equal(t, "User not found", err.Error())
	assert.Equal(t, CodeNotFound, err.Code)
	assert.Equal(t, "User", err.Resource)
	assert.Equal(t, 42, err.ID)
}

func TestIsNotFound(t *testing.T) {
	wrapped := fmt.Errorf("create comment: %w", NewNotFoundError("Post", 7))

	assert.True(t, IsNotFound(wrapped, "Post"))
	assert.True(t, IsNotFound(wrapped, ""))
	assert.False(t, IsNotFound(wrapped, "Author"))
	assert.False(t, IsNotFound(errors.New("boom"), ""))
	assert.False(t, IsNotFound(ErrEmailExists, ""))
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(fmt.Errorf("wrap: %w", ErrEmailExists), CodeConflict))
	assert.False(t, IsCode(NewValidationError("bad"), CodeConflict))
	assert.False(t, IsCode(nil, CodeConflict))
}

func TestInternalError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRespondWithError(t *testing.T) {
	app := fiber.New()
	app.Get("/nf", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusNotFound, NewNotFoundError("Post", 1))
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusInternalServerError, NewInternalError(errors.New("secret dsn")))
	})

	tests := []struct {
		path       string
		wantStatus int
		wantError  string
		wantCode   string
	}{
		{"/nf", http.StatusNotFound, "Post not found", CodeNotFound},
		{"/internal", http.StatusInternalServerError, "Internal server error", CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			body, _ := io.ReadAll(resp.Body)
			var out ErrorResponse
			require.NoError(t, json.Unmarshal(body, &out))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantError, out.Error)
			assert.Equal(t, tt.wantCode, out.Code)
			assert.NotContains(t, string(body), "secret dsn")
		})
	}
}
