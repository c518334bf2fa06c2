package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inarawedding/site-server-go/internal/auth"
	apperrors "github.com/inarawedding/site-server-go/internal/errors"
	"github.com/inarawedding/site-server-go/internal/model"
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

const authTestSecret = "auth-service-test-secret-32-chars!!!"

func testAdmin(t *testing.T, password string) *model.Administrator {
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

func TestAuthServiceLogin(t *testing.T) {
	codec := auth.NewTokenCodec(authTestSecret, time.Hour)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		admin := testAdmin(t, "hunter2hunter2")
		repo := new(mockAdminRepo)
		repo.On("FindActiveByEmail", ctx, admin.Email).Return(admin, nil)
		repo.On("UpdateLastLogin", ctx, admin.ID).Return(nil)

		svc := NewAuthService(repo, codec)
		got, token, err := svc.Login(ctx, admin.Email, "hunter2hunter2")

		require.NoError(t, err)
		assert.Equal(t, admin.ID, got.ID)
		require.NotEmpty(t, token)

		claims, err := codec.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, claims.AdminID)
		assert.Equal(t, admin.Email, claims.Email)
		assert.Equal(t, "owner", claims.Role)

		repo.AssertExpectations(t)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		admin := testAdmin(t, "hunter2hunter2")
		repo := new(mockAdminRepo)
		repo.On("FindActiveByEmail", ctx, "nobody@inarawedding.com").Return(nil, nil)
		repo.On("FindActiveByEmail", ctx, admin.Email).Return(admin, nil)

		svc := NewAuthService(repo, codec)

		_, _, unknownErr := svc.Login(ctx, "nobody@inarawedding.com", "whatever")
		_, _, wrongPassErr := svc.Login(ctx, admin.Email, "wrong-password")

		require.Error(t, unknownErr)
		require.Error(t, wrongPassErr)
		assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(unknownErr))
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(wrongPassErr))
	})

	t.Run("inactive account behaves like unknown email", func(t *testing.T) {
		// The repository only surfaces active rows, so an inactive account is a
		// nil lookup from the service's point of view.
		repo := new(mockAdminRepo)
		repo.On("FindActiveByEmail", ctx, "inactive@inarawedding.com").Return(nil, nil)

		svc := NewAuthService(repo, codec)
		_, _, err := svc.Login(ctx, "inactive@inarawedding.com", "hunter2hunter2")

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
	})

	t.Run("repository failure surfaces as database error", func(t *testing.T) {
		repo := new(mockAdminRepo)
		repo.On("FindActiveByEmail", ctx, mock.Anything).Return(nil, errors.New("connection refused"))

		svc := NewAuthService(repo, codec)
		_, _, err := svc.Login(ctx, "owner@inarawedding.com", "hunter2hunter2")

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeDatabase, apperrors.GetCode(err))
	})

	t.Run("last login failure does not block login", func(t *testing.T) {
		admin := testAdmin(t, "hunter2hunter2")
		repo := new(mockAdminRepo)
		repo.On("FindActiveByEmail", ctx, admin.Email).Return(admin, nil)
		repo.On("UpdateLastLogin", ctx, admin.ID).Return(errors.New("write timeout"))

		svc := NewAuthService(repo, codec)
		_, token, err := svc.Login(ctx, admin.Email, "hunter2hunter2")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}
