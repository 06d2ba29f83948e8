package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id uint, fields map[string]any) (*models.User, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return int64(args.Int(0)), args.Error(1)
}

func TestStorageFailuresUseFallbackMessages(t *testing.T) {
	boom := models.NewInternalError(errors.New("pq: connection reset"))

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		mockSetup  func(m *MockUserRepository)
		wantStatus int
		wantError  string
	}{
		{
			name:       "list users",
			method:     http.MethodGet,
			path:       "/api/users",
			mockSetup:  func(m *MockUserRepository) { m.On("List", mock.Anything).Return(nil, boom) },
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to fetch users",
		},
		{
			name:       "get user",
			method:     http.MethodGet,
			path:       "/api/users/1",
			mockSetup:  func(m *MockUserRepository) { m.On("GetByID", mock.Anything, uint(1)).Return(nil, boom) },
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to fetch user",
		},
		{
			name:   "create user",
			method: http.MethodPost,
			path:   "/api/users",
			body:   map[string]string{"email": "a@example.com", "password": "pw"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "a@example.com").Return(nil, nil)
				m.On("Create", mock.Anything, mock.Anything).Return(boom)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Failed to create user",
		},
		{
			name:   "update user",
			method: http.MethodPut,
			path:   "/api/users/1",
			body:   map[string]string{"name": "x"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1}, nil)
				m.On("Update", mock.Anything, uint(1), mock.Anything).Return(nil, boom)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Failed to update user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.mockSetup(users)

			db := testutil.NewSQLiteDB(t)
			repos := repository.NewRepositories(db, nil)
			repos.Users = users
			s := newServer(testConfig(), db, nil, repos, repository.NewSequentialUnitOfWork(repos))

			status, raw := do(t, s.App(), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantError, errorOf(t, raw))
			assert.NotContains(t, string(raw), "connection reset")
			users.AssertExpectations(t)
		})
	}
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantOK     bool
	}{
		{"not found", models.NewNotFoundError("Post", 1), http.StatusNotFound, true},
		{"conflict", models.ErrEmailExists, http.StatusConflict, true},
		{"validation", models.NewValidationError("bad"), http.StatusBadRequest, true},
		{"internal", models.NewInternalError(errors.New("x")), 0, false},
		{"plain", errors.New("x"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := mapServiceError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
