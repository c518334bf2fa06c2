package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/inarawedding/site-server-go/internal/model"
)

type BlogPostRepository interface {
	FindByID(ctx context.Context, id string) (*model.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	FindAll(ctx context.Context, limit, offset int) ([]model.BlogPost, error)
	FindPublished(ctx context.Context, limit, offset int) ([]model.BlogPost, error)
	Create(ctx context.Context, params model.CreateBlogPostParams) (*model.BlogPost, error)
	Update(ctx context.Context, id string, params model.UpdateBlogPostParams) (*model.BlogPost, error)
	SetPublished(ctx context.Context, id string, published bool, publishedAt *time.Time) (*model.BlogPost, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type blogPostRepo struct {
	db *sqlx.DB
}

func NewBlogPostRepository(db *sqlx.DB) BlogPostRepository {
	return &blogPostRepo{db: db}
}

func (r *blogPostRepo) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.GetContext(ctx, &post, `
		SELECT * FROM blog_posts WHERE id = $1
	`, id)
	return HandleNotFound(&post, err)
}

func (r *blogPostRepo) FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.GetContext(ctx, &post, `
		SELECT * FROM blog_posts WHERE slug = $1
	`, slug)
	return HandleNotFound(&post, err)
}

func (r *blogPostRepo) FindAll(ctx context.Context, limit, offset int) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	err := r.db.SelectContext(ctx, &posts, `
		SELECT * FROM blog_posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *blogPostRepo) FindPublished(ctx context.Context, limit, offset int) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	err := r.db.SelectContext(ctx, &posts, `
		SELECT * FROM blog_posts
		WHERE is_published = TRUE
		ORDER BY published_at DESC NULLS LAST
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *blogPostRepo) Create(ctx context.Context, params model.CreateBlogPostParams) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.GetContext(ctx, &post, `
		INSERT INTO blog_posts (slug, title, excerpt, body, cover_image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.Slug, params.Title, params.Excerpt, params.Body, params.CoverImageURL)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepo) Update(ctx context.Context, id string, params model.UpdateBlogPostParams) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.GetContext(ctx, &post, `
		UPDATE blog_posts SET
			title = COALESCE($2, title),
			excerpt = COALESCE($3, excerpt),
			body = COALESCE($4, body),
			cover_image_url = COALESCE($5, cover_image_url),
			updated_at = $6
		WHERE id = $1
		RETURNING *
	`, id, params.Title, params.Excerpt, params.Body, params.CoverImageURL, time.Now())
	return HandleNotFound(&post, err)
}

func (r *blogPostRepo) SetPublished(ctx context.Context, id string, published bool, publishedAt *time.Time) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.GetContext(ctx, &post, `
		UPDATE blog_posts SET
			is_published = $2,
			published_at = COALESCE($3, published_at),
			updated_at = NOW()
		WHERE id = $1
		RETURNING *
	`, id, published, publishedAt)
	return HandleNotFound(&post, err)
}

func (r *blogPostRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	return err
}

func (r *blogPostRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM blog_posts`)
	return count, err
}
