package service

import (
	"context"

	"github.com/inarawedding/site-server-go/internal/auth"
	apperrors "github.com/inarawedding/site-server-go/internal/errors"
	"github.com/inarawedding/site-server-go/internal/model"
	"github.com/inarawedding/site-server-go/internal/repository"
)

// AdminService manages back-office accounts and dashboard stats. Account
// creation and password changes happen here; login never mutates anything
// except last_login_at.
type AdminService struct {
	adminRepo       repository.AdminRepository
	templateRepo    repository.TemplateRepository
	hantaranRepo    repository.HantaranRepository
	serviceRepo     repository.WeddingServiceRepository
	postRepo        repository.BlogPostRepository
	testimonialRepo repository.TestimonialRepository
}

func NewAdminService(
	adminRepo repository.AdminRepository,
	templateRepo repository.TemplateRepository,
	hantaranRepo repository.HantaranRepository,
	serviceRepo repository.WeddingServiceRepository,
	postRepo repository.BlogPostRepository,
	testimonialRepo repository.TestimonialRepository,
) *AdminService {
	return &AdminService{
		adminRepo:       adminRepo,
		templateRepo:    templateRepo,
		hantaranRepo:    hantaranRepo,
		serviceRepo:     serviceRepo,
		postRepo:        postRepo,
		testimonialRepo: testimonialRepo,
	}
}

func (s *AdminService) GetAdministrator(ctx context.Context, id string) (*model.Administrator, error) {
	return s.adminRepo.FindByID(ctx, id)
}

func (s *AdminService) ListAdministrators(ctx context.Context, limit, offset int) ([]model.Administrator, int, error) {
	admins, err := s.adminRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.adminRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return admins, total, nil
}

func (s *AdminService) CreateAdministrator(ctx context.Context, email, name, password string, role model.AdminRole) (*model.Administrator, error) {
	existing, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("Administrator")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password").WithCause(err)
	}

	admin, err := s.adminRepo.Create(ctx, model.CreateAdministratorParams{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return admin, nil
}

// UpdateAdministrator applies partial updates. A non-nil password is hashed
// here; nobody outside this service ever sees plaintext past the handler.
func (s *AdminService) UpdateAdministrator(ctx context.Context, id string, name *string, role *model.AdminRole, isActive *bool, password *string) (*model.Administrator, error) {
	params := model.UpdateAdministratorParams{
		Name:     name,
		Role:     role,
		IsActive: isActive,
	}

	if password != nil {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			return nil, apperrors.Internal("Failed to hash password").WithCause(err)
		}
		params.PasswordHash = &hash
	}

	admin, err := s.adminRepo.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if admin == nil {
		return nil, apperrors.NotFound("Administrator")
	}
	return admin, nil
}

type Stats struct {
	Administrators int `json:"administrators"`
	Templates      int `json:"templates"`
	Hantaran       int `json:"hantaran"`
	Services       int `json:"services"`
	Posts          int `json:"posts"`
	Testimonials   int `json:"testimonials"`
}

func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var err error
	if stats.Administrators, err = s.adminRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Templates, err = s.templateRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Hantaran, err = s.hantaranRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Services, err = s.serviceRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Posts, err = s.postRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Testimonials, err = s.testimonialRepo.Count(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
