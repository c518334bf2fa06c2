package model

import (
	"time"
)

// Administrator is a back-office account. PasswordHash never serializes.
type Administrator struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Name         string     `db:"name" json:"name"`
	PasswordHash string     `db:"password_hash" json:"-"`
	IsActive     bool       `db:"is_active" json:"isActive"`
	Role         AdminRole  `db:"role" json:"role"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

type CreateAdministratorParams struct {
	Email        string
	Name         string
	PasswordHash string
	Role         AdminRole
}

type UpdateAdministratorParams struct {
	Name         *string
	Role         *AdminRole
	IsActive     *bool
	PasswordHash *string
}
