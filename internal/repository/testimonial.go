package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/inarawedding/site-server-go/internal/model"
)

type TestimonialRepository interface {
	FindByID(ctx context.Context, id string) (*model.Testimonial, error)
	FindAll(ctx context.Context, limit, offset int) ([]model.Testimonial, error)
	FindPublished(ctx context.Context, limit, offset int) ([]model.Testimonial, error)
	Create(ctx context.Context, params model.CreateTestimonialParams) (*model.Testimonial, error)
	Update(ctx context.Context, id string, params model.UpdateTestimonialParams) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type testimonialRepo struct {
	db *sqlx.DB
}

func NewTestimonialRepository(db *sqlx.DB) TestimonialRepository {
	return &testimonialRepo{db: db}
}

func (r *testimonialRepo) FindByID(ctx context.Context, id string) (*model.Testimonial, error) {
	var tm model.Testimonial
	err := r.db.GetContext(ctx, &tm, `
		SELECT * FROM testimonials WHERE id = $1
	`, id)
	return HandleNotFound(&tm, err)
}

func (r *testimonialRepo) FindAll(ctx context.Context, limit, offset int) ([]model.Testimonial, error) {
	var testimonials []model.Testimonial
	err := r.db.SelectContext(ctx, &testimonials, `
		SELECT * FROM testimonials
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (r *testimonialRepo) FindPublished(ctx context.Context, limit, offset int) ([]model.Testimonial, error) {
	var testimonials []model.Testimonial
	err := r.db.SelectContext(ctx, &testimonials, `
		SELECT * FROM testimonials
		WHERE is_published = TRUE
		ORDER BY event_date DESC NULLS LAST
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (r *testimonialRepo) Create(ctx context.Context, params model.CreateTestimonialParams) (*model.Testimonial, error) {
	var tm model.Testimonial
	err := r.db.GetContext(ctx, &tm, `
		INSERT INTO testimonials (client_name, event_date, quote, rating, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.ClientName, params.EventDate, params.Quote, params.Rating, params.PhotoURL)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func (r *testimonialRepo) Update(ctx context.Context, id string, params model.UpdateTestimonialParams) (*model.Testimonial, error) {
	var tm model.Testimonial
	err := r.db.GetContext(ctx, &tm, `
		UPDATE testimonials SET
			client_name = COALESCE($2, client_name),
			event_date = COALESCE($3, event_date),
			quote = COALESCE($4, quote),
			rating = COALESCE($5, rating),
			photo_url = COALESCE($6, photo_url),
			is_published = COALESCE($7, is_published),
			updated_at = $8
		WHERE id = $1
		RETURNING *
	`, id, params.ClientName, params.EventDate, params.Quote, params.Rating, params.PhotoURL, params.IsPublished, time.Now())
	return HandleNotFound(&tm, err)
}

func (r *testimonialRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	return err
}

func (r *testimonialRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM testimonials`)
	return count, err
}
