package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/inarawedding/site-server-go/internal/model"
)

// AdminRepository is the credential store for back-office accounts. Login only
// ever reads through FindActiveByEmail so deactivated accounts are invisible
// to authentication.
type AdminRepository interface {
	FindByID(ctx context.Context, id string) (*model.Administrator, error)
	FindByEmail(ctx context.Context, email string) (*model.Administrator, error)
	FindActiveByEmail(ctx context.Context, email string) (*model.Administrator, error)
	FindAll(ctx context.Context, limit, offset int) ([]model.Administrator, error)
	Create(ctx context.Context, params model.CreateAdministratorParams) (*model.Administrator, error)
	Update(ctx context.Context, id string, params model.UpdateAdministratorParams) (*model.Administrator, error)
	UpdateLastLogin(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type adminRepo struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) FindByID(ctx context.Context, id string) (*model.Administrator, error) {
	var admin model.Administrator
	err := r.db.GetContext(ctx, &admin, `
		SELECT * FROM administrators WHERE id = $1
	`, id)
	return HandleNotFound(&admin, err)
}

func (r *adminRepo) FindByEmail(ctx context.Context, email string) (*model.Administrator, error) {
	var admin model.Administrator
	err := r.db.GetContext(ctx, &admin, `
		SELECT * FROM administrators WHERE email = $1
	`, email)
	return HandleNotFound(&admin, err)
}

func (r *adminRepo) FindActiveByEmail(ctx context.Context, email string) (*model.Administrator, error) {
	var admin model.Administrator
	err := r.db.GetContext(ctx, &admin, `
		SELECT * FROM administrators
		WHERE email = $1 AND is_active = TRUE
	`, email)
	return HandleNotFound(&admin, err)
}

func (r *adminRepo) FindAll(ctx context.Context, limit, offset int) ([]model.Administrator, error) {
	var admins []model.Administrator
	err := r.db.SelectContext(ctx, &admins, `
		SELECT * FROM administrators
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepo) Create(ctx context.Context, params model.CreateAdministratorParams) (*model.Administrator, error) {
	var admin model.Administrator
	err := r.db.GetContext(ctx, &admin, `
		INSERT INTO administrators (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.Email, params.Name, params.PasswordHash, params.Role)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) Update(ctx context.Context, id string, params model.UpdateAdministratorParams) (*model.Administrator, error) {
	var admin model.Administrator
	err := r.db.GetContext(ctx, &admin, `
		UPDATE administrators SET
			name = COALESCE($2, name),
			role = COALESCE($3, role),
			is_active = COALESCE($4, is_active),
			password_hash = COALESCE($5, password_hash),
			updated_at = $6
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.Role, params.IsActive, params.PasswordHash, time.Now())
	return HandleNotFound(&admin, err)
}

func (r *adminRepo) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE administrators SET last_login_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`, id)
	return err
}

func (r *adminRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM administrators`)
	return count, err
}
