package service

import (
	"context"
	"time"

	"github.com/inarawedding/site-server-go/internal/model"
	"github.com/inarawedding/site-server-go/internal/repository"
)

// BlogService covers editorial content: blog posts and client testimonials.
type BlogService struct {
	postRepo        repository.BlogPostRepository
	testimonialRepo repository.TestimonialRepository
}

func NewBlogService(
	postRepo repository.BlogPostRepository,
	testimonialRepo repository.TestimonialRepository,
) *BlogService {
	return &BlogService{
		postRepo:        postRepo,
		testimonialRepo: testimonialRepo,
	}
}

// Posts

func (s *BlogService) ListPublishedPosts(ctx context.Context, limit, offset int) ([]model.BlogPost, error) {
	return s.postRepo.FindPublished(ctx, limit, offset)
}

func (s *BlogService) GetPublishedPost(ctx context.Context, slug string) (*model.BlogPost, error) {
	post, err := s.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublished {
		return nil, nil
	}
	return post, nil
}

func (s *BlogService) ListPosts(ctx context.Context, limit, offset int) ([]model.BlogPost, int, error) {
	posts, err := s.postRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *BlogService) CreatePost(ctx context.Context, params model.CreateBlogPostParams) (*model.BlogPost, error) {
	return s.postRepo.Create(ctx, params)
}

func (s *BlogService) UpdatePost(ctx context.Context, id string, params model.UpdateBlogPostParams) (*model.BlogPost, error) {
	return s.postRepo.Update(ctx, id, params)
}

// SetPostPublished toggles visibility. The first publish stamps published_at;
// republishing keeps the original date.
func (s *BlogService) SetPostPublished(ctx context.Context, id string, published bool) (*model.BlogPost, error) {
	var publishedAt *time.Time
	if published {
		now := time.Now()
		publishedAt = &now
	}
	return s.postRepo.SetPublished(ctx, id, published, publishedAt)
}

func (s *BlogService) DeletePost(ctx context.Context, id string) error {
	return s.postRepo.Delete(ctx, id)
}

// Testimonials

func (s *BlogService) ListPublishedTestimonials(ctx context.Context, limit, offset int) ([]model.Testimonial, error) {
	return s.testimonialRepo.FindPublished(ctx, limit, offset)
}

func (s *BlogService) ListTestimonials(ctx context.Context, limit, offset int) ([]model.Testimonial, int, error) {
	testimonials, err := s.testimonialRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.testimonialRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return testimonials, total, nil
}

func (s *BlogService) CreateTestimonial(ctx context.Context, params model.CreateTestimonialParams) (*model.Testimonial, error) {
	return s.testimonialRepo.Create(ctx, params)
}

func (s *BlogService) UpdateTestimonial(ctx context.Context, id string, params model.UpdateTestimonialParams) (*model.Testimonial, error) {
	return s.testimonialRepo.Update(ctx, id, params)
}

func (s *BlogService) DeleteTestimonial(ctx context.Context, id string) error {
	return s.testimonialRepo.Delete(ctx, id)
}
