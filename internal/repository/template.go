package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/inarawedding/site-server-go/internal/model"
)

type TemplateRepository interface {
	FindByID(ctx context.Context, id string) (*model.InvitationTemplate, error)
	FindBySlug(ctx context.Context, slug string) (*model.InvitationTemplate, error)
	FindAll(ctx context.Context, limit, offset int) ([]model.InvitationTemplate, error)
	FindPublished(ctx context.Context, category model.TemplateCategory, limit, offset int) ([]model.InvitationTemplate, error)
	Create(ctx context.Context, params model.CreateTemplateParams) (*model.InvitationTemplate, error)
	Update(ctx context.Context, id string, params model.UpdateTemplateParams) (*model.InvitationTemplate, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountPublished(ctx context.Context, category model.TemplateCategory) (int, error)
}

type templateRepo struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) FindByID(ctx context.Context, id string) (*model.InvitationTemplate, error) {
	var tpl model.InvitationTemplate
	err := r.db.GetContext(ctx, &tpl, `
		SELECT * FROM invitation_templates WHERE id = $1
	`, id)
	return HandleNotFound(&tpl, err)
}

func (r *templateRepo) FindBySlug(ctx context.Context, slug string) (*model.InvitationTemplate, error) {
	var tpl model.InvitationTemplate
	err := r.db.GetContext(ctx, &tpl, `
		SELECT * FROM invitation_templates WHERE slug = $1
	`, slug)
	return HandleNotFound(&tpl, err)
}

func (r *templateRepo) FindAll(ctx context.Context, limit, offset int) ([]model.InvitationTemplate, error) {
	var templates []model.InvitationTemplate
	err := r.db.SelectContext(ctx, &templates, `
		SELECT * FROM invitation_templates
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepo) FindPublished(ctx context.Context, category model.TemplateCategory, limit, offset int) ([]model.InvitationTemplate, error) {
	var templates []model.InvitationTemplate
	err := r.db.SelectContext(ctx, &templates, `
		SELECT * FROM invitation_templates
		WHERE is_published = TRUE AND ($1 = '' OR category = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, category, limit, offset)
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepo) Create(ctx context.Context, params model.CreateTemplateParams) (*model.InvitationTemplate, error) {
	var tpl model.InvitationTemplate
	err := r.db.GetContext(ctx, &tpl, `
		INSERT INTO invitation_templates (slug, name, description, category, price_idr, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *
	`, params.Slug, params.Name, params.Description, params.Category, params.PriceIDR, params.ImageURL)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *templateRepo) Update(ctx context.Context, id string, params model.UpdateTemplateParams) (*model.InvitationTemplate, error) {
	var tpl model.InvitationTemplate
	err := r.db.GetContext(ctx, &tpl, `
		UPDATE invitation_templates SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			category = COALESCE($4, category),
			price_idr = COALESCE($5, price_idr),
			image_url = COALESCE($6, image_url),
			is_published = COALESCE($7, is_published),
			updated_at = $8
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.Description, params.Category, params.PriceIDR, params.ImageURL, params.IsPublished, time.Now())
	return HandleNotFound(&tpl, err)
}

func (r *templateRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invitation_templates WHERE id = $1`, id)
	return err
}

func (r *templateRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM invitation_templates`)
	return count, err
}

func (r *templateRepo) CountPublished(ctx context.Context, category model.TemplateCategory) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM invitation_templates
		WHERE is_published = TRUE AND ($1 = '' OR category = $1)
	`, category)
	return count, err
}
