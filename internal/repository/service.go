package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/inarawedding/site-server-go/internal/model"
)

type WeddingServiceRepository interface {
	FindByID(ctx context.Context, id string) (*model.WeddingService, error)
	FindBySlug(ctx context.Context, slug string) (*model.WeddingService, error)
	FindAll(ctx context.Context, limit, offset int) ([]model.WeddingService, error)
	FindPublished(ctx context.Context, limit, offset int) ([]model.WeddingService, error)
	Create(ctx context.Context, params model.CreateWeddingServiceParams) (*model.WeddingService, error)
	Update(ctx context.Context, id string, params model.UpdateWeddingServiceParams) (*model.WeddingService, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type weddingServiceRepo struct {
	db *sqlx.DB
}

func NewWeddingServiceRepository(db *sqlx.DB) WeddingServiceRepository {
	return &weddingServiceRepo{db: db}
}

func (r *weddingServiceRepo) FindByID(ctx context.Context, id string) (*model.WeddingService, error) {
	var svc model.WeddingService
	err := r.db.GetContext(ctx, &svc, `
		SELECT * FROM wedding_services WHERE id = $1
	`, id)
	return HandleNotFound(&svc, err)
}

func (r *weddingServiceRepo) FindBySlug(ctx context.Context, slug string) (*model.WeddingService, error) {
	var svc model.WeddingService
	err := r.db.GetContext(ctx, &svc, `
		SELECT * FROM wedding_services WHERE slug = $1
	`, slug)
	return HandleNotFound(&svc, err)
}

func (r *weddingServiceRepo) FindAll(ctx context.Context, limit, offset int) ([]model.WeddingService, error) {
	var services []model.WeddingService
	err := r.db.SelectContext(ctx, &services, `
		SELECT * FROM wedding_services
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *weddingServiceRepo) FindPublished(ctx context.Context, limit, offset int) ([]model.WeddingService, error) {
	var services []model.WeddingService
	err := r.db.SelectContext(ctx, &services, `
		SELECT * FROM wedding_services
		WHERE is_published = TRUE
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *weddingServiceRepo) Create(ctx context.Context, params model.CreateWeddingServiceParams) (*model.WeddingService, error) {
	var svc model.WeddingService
	err := r.db.GetContext(ctx, &svc, `
		INSERT INTO wedding_services (slug, name, description, price_from_idr, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.Slug, params.Name, params.Description, params.PriceFromIDR, params.ImageURL)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *weddingServiceRepo) Update(ctx context.Context, id string, params model.UpdateWeddingServiceParams) (*model.WeddingService, error) {
	var svc model.WeddingService
	err := r.db.GetContext(ctx, &svc, `
		UPDATE wedding_services SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			price_from_idr = COALESCE($4, price_from_idr),
			image_url = COALESCE($5, image_url),
			is_published = COALESCE($6, is_published),
			updated_at = $7
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.Description, params.PriceFromIDR, params.ImageURL, params.IsPublished, time.Now())
	return HandleNotFound(&svc, err)
}

func (r *weddingServiceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM wedding_services WHERE id = $1`, id)
	return err
}

func (r *weddingServiceRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM wedding_services`)
	return count, err
}
