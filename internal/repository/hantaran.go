package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/inarawedding/site-server-go/internal/model"
)

type HantaranRepository interface {
	FindByID(ctx context.Context, id string) (*model.HantaranPackage, error)
	FindBySlug(ctx context.Context, slug string) (*model.HantaranPackage, error)
	FindAll(ctx context.Context, limit, offset int) ([]model.HantaranPackage, error)
	FindPublished(ctx context.Context, limit, offset int) ([]model.HantaranPackage, error)
	Create(ctx context.Context, params model.CreateHantaranParams) (*model.HantaranPackage, error)
	Update(ctx context.Context, id string, params model.UpdateHantaranParams) (*model.HantaranPackage, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountPublished(ctx context.Context) (int, error)
}

type hantaranRepo struct {
	db *sqlx.DB
}

func NewHantaranRepository(db *sqlx.DB) HantaranRepository {
	return &hantaranRepo{db: db}
}

func (r *hantaranRepo) FindByID(ctx context.Context, id string) (*model.HantaranPackage, error) {
	var pkg model.HantaranPackage
	err := r.db.GetContext(ctx, &pkg, `
		SELECT * FROM hantaran_packages WHERE id = $1
	`, id)
	return HandleNotFound(&pkg, err)
}

func (r *hantaranRepo) FindBySlug(ctx context.Context, slug string) (*model.HantaranPackage, error) {
	var pkg model.HantaranPackage
	err := r.db.GetContext(ctx, &pkg, `
		SELECT * FROM hantaran_packages WHERE slug = $1
	`, slug)
	return HandleNotFound(&pkg, err)
}

func (r *hantaranRepo) FindAll(ctx context.Context, limit, offset int) ([]model.HantaranPackage, error) {
	var packages []model.HantaranPackage
	err := r.db.SelectContext(ctx, &packages, `
		SELECT * FROM hantaran_packages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *hantaranRepo) FindPublished(ctx context.Context, limit, offset int) ([]model.HantaranPackage, error) {
	var packages []model.HantaranPackage
	err := r.db.SelectContext(ctx, &packages, `
		SELECT * FROM hantaran_packages
		WHERE is_published = TRUE
		ORDER BY price_idr ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *hantaranRepo) Create(ctx context.Context, params model.CreateHantaranParams) (*model.HantaranPackage, error) {
	var pkg model.HantaranPackage
	err := r.db.GetContext(ctx, &pkg, `
		INSERT INTO hantaran_packages (slug, name, description, price_idr, items, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *
	`, params.Slug, params.Name, params.Description, params.PriceIDR, params.Items, params.ImageURL)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *hantaranRepo) Update(ctx context.Context, id string, params model.UpdateHantaranParams) (*model.HantaranPackage, error) {
	var pkg model.HantaranPackage
	err := r.db.GetContext(ctx, &pkg, `
		UPDATE hantaran_packages SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			price_idr = COALESCE($4, price_idr),
			items = COALESCE($5, items),
			image_url = COALESCE($6, image_url),
			is_published = COALESCE($7, is_published),
			updated_at = $8
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.Description, params.PriceIDR, params.Items, params.ImageURL, params.IsPublished, time.Now())
	return HandleNotFound(&pkg, err)
}

func (r *hantaranRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM hantaran_packages WHERE id = $1`, id)
	return err
}

func (r *hantaranRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM hantaran_packages`)
	return count, err
}

func (r *hantaranRepo) CountPublished(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM hantaran_packages WHERE is_published = TRUE`)
	return count, err
}
