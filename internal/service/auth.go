package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/inarawedding/site-server-go/internal/auth"
	apperrors "github.com/inarawedding/site-server-go/internal/errors"
	"github.com/inarawedding/site-server-go/internal/model"
	"github.com/inarawedding/site-server-go/internal/repository"
)

// AuthService orchestrates administrator login: credential lookup, password
// verification, last-login bookkeeping, and session token issuance.
type AuthService struct {
	adminRepo repository.AdminRepository
	codec     *auth.TokenCodec
}

func NewAuthService(adminRepo repository.AdminRepository, codec *auth.TokenCodec) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		codec:     codec,
	}
}

// Login verifies the credentials and returns the administrator plus a signed
// session token. Unknown email, wrong password, and deactivated account all
// return the same InvalidCredentials error; the reason is only logged.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Administrator, string, error) {
	admin, err := s.adminRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.Database(err)
	}
	if admin == nil {
		log.Warn().Str("email", email).Msg("login failed: unknown or inactive account")
		return nil, "", apperrors.InvalidCredentials()
	}

	if !auth.CheckPassword(password, admin.PasswordHash) {
		log.Warn().Str("email", email).Msg("login failed: password mismatch")
		return nil, "", apperrors.InvalidCredentials()
	}

	// Best effort: a failed audit-timestamp write must not block login.
	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID); err != nil {
		log.Warn().Err(err).Str("adminId", admin.ID).Msg("failed to update last login timestamp")
	}

	token, err := s.codec.Issue(admin.ID, admin.Email, string(admin.Role))
	if err != nil {
		return nil, "", apperrors.Internal("Failed to create session").WithCause(err)
	}

	return admin, token, nil
}
