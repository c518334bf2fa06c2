package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inarawedding/site-server-go/internal/auth"
	"github.com/inarawedding/site-server-go/internal/middleware"
	"github.com/inarawedding/site-server-go/internal/model"
	"github.com/inarawedding/site-server-go/internal/service"
)

type mockAdminRepo struct {
	mock.Mock
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id string) (*model.Administrator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Administrator), args.Error(1)
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*model.Administrator, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Administrator), args.Error(1)
}

func (m *mockAdminRepo) FindActiveByEmail(ctx context.Context, email string) (*model.Administrator, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Administrator), args.Error(1)
}

func (m *mockAdminRepo) FindAll(ctx context.Context, limit, offset int) ([]model.Administrator, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]model.Administrator), args.Error(1)
}

func (m *mockAdminRepo) Create(ctx context.Context, params model.CreateAdministratorParams) (*model.Administrator, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Administrator), args.Error(1)
}

func (m *mockAdminRepo) Update(ctx context.Context, id string, params model.UpdateAdministratorParams) (*model.Administrator, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Administrator), args.Error(1)
}

func (m *mockAdminRepo) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAdminRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

const handlerTestSecret = "handler-test-secret-32-chars-long!!!"

func newAuthTestServer(t *testing.T, repo *mockAdminRepo) http.Handler {
	t.Helper()

	codec := auth.NewTokenCodec(handlerTestSecret, time.Hour)
	authService := service.NewAuthService(repo, codec)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	limiter := middleware.NewLoginRateLimiter(client)

	h := NewAuthHandler(authService, limiter, false)
	return h.Routes()
}

func loginRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/admin", bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.AdminTokenCookie {
			return c
		}
	}
	return nil
}

func activeAdmin(t *testing.T, password string) *model.Administrator {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	return &model.Administrator{
		ID:           "9f6c2b1a-0d5e-4f3a-8b7c-123456789abc",
		Email:        "owner@inarawedding.com",
		Name:         "Owner",
		PasswordHash: hash,
		IsActive:     true,
		Role:         model.AdminRoleOwner,
	}
}

func TestLogin(t *testing.T) {
	t.Run("success sets cookie and returns user", func(t *testing.T) {
		admin := activeAdmin(t, "hunter2hunter2")
		repo := new(mockAdminRepo)
		repo.On("FindActiveByEmail", mock.Anything, admin.Email).Return(admin, nil)
		repo.On("UpdateLastLogin", mock.Anything, admin.ID).Return(nil)

		handler := newAuthTestServer(t, repo)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest(`{"email":"owner@inarawedding.com","password":"hunter2hunter2"}`))

		require.Equal(t, http.StatusOK, rec.Code)

		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

		var body struct {
			Success bool `json:"success"`
			User    struct {
				ID    string `json:"id"`
				Email string `json:"email"`
				Name  string `json:"name"`
				Role  string `json:"role"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, admin.ID, body.User.ID)
		assert.Equal(t, admin.Email, body.User.Email)
		assert.Equal(t, "owner", body.User.Role)

		// Neither the hash nor the token may appear in the response body.
		assert.NotContains(t, rec.Body.String(), "passwordHash")
		assert.NotContains(t, rec.Body.String(), admin.PasswordHash)
		assert.NotContains(t, rec.Body.String(), cookie.Value)
	})

	t.Run("wrong password gets 401 without cookie", func(t *testing.T) {
		admin := activeAdmin(t, "hunter2hunter2")
		repo := new(mockAdminRepo)
		repo.On("FindActiveByEmail", mock.Anything, admin.Email).Return(admin, nil)

		handler := newAuthTestServer(t, repo)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest(`{"email":"owner@inarawedding.com","password":"wrong"}`))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("unknown email gets the same 401 body", func(t *testing.T) {
		admin := activeAdmin(t, "hunter2hunter2")
		repo := new(mockAdminRepo)
		repo.On("FindActiveByEmail", mock.Anything, admin.Email).Return(admin, nil)
		repo.On("FindActiveByEmail", mock.Anything, "nobody@inarawedding.com").Return(nil, nil)

		handler := newAuthTestServer(t, repo)

		wrongRec := httptest.NewRecorder()
		handler.ServeHTTP(wrongRec, loginRequest(`{"email":"owner@inarawedding.com","password":"wrong"}`))

		unknownRec := httptest.NewRecorder()
		handler.ServeHTTP(unknownRec, loginRequest(`{"email":"nobody@inarawedding.com","password":"wrong"}`))

		assert.Equal(t, http.StatusUnauthorized, wrongRec.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownRec.Code)
		assert.Equal(t, wrongRec.Body.String(), unknownRec.Body.String())
	})

	t.Run("missing fields get 400", func(t *testing.T) {
		repo := new(mockAdminRepo)
		handler := newAuthTestServer(t, repo)

		for name, body := range map[string]string{
			"no email":    `{"password":"hunter2hunter2"}`,
			"no password": `{"email":"owner@inarawedding.com"}`,
			"empty body":  `{}`,
			"not json":    `email=owner`,
		} {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, loginRequest(body))
			assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		}

		repo.AssertNotCalled(t, "FindActiveByEmail", mock.Anything, mock.Anything)
	})

	t.Run("repository failure gets 500", func(t *testing.T) {
		repo := new(mockAdminRepo)
		repo.On("FindActiveByEmail", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		handler := newAuthTestServer(t, repo)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest(`{"email":"owner@inarawedding.com","password":"hunter2hunter2"}`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Nil(t, sessionCookie(rec))
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestLogout(t *testing.T) {
	repo := new(mockAdminRepo)
	handler := newAuthTestServer(t, repo)

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/admin", nil)
	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}
