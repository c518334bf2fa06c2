package service

import (
	"context"

	"github.com/inarawedding/site-server-go/internal/model"
	"github.com/inarawedding/site-server-go/internal/repository"
)

// CatalogService covers the storefront catalog: invitation templates,
// hantaran packages, and bookable wedding services. Public readers only ever
// see published entries; admin methods see everything.
type CatalogService struct {
	templateRepo repository.TemplateRepository
	hantaranRepo repository.HantaranRepository
	serviceRepo  repository.WeddingServiceRepository
}

func NewCatalogService(
	templateRepo repository.TemplateRepository,
	hantaranRepo repository.HantaranRepository,
	serviceRepo repository.WeddingServiceRepository,
) *CatalogService {
	return &CatalogService{
		templateRepo: templateRepo,
		hantaranRepo: hantaranRepo,
		serviceRepo:  serviceRepo,
	}
}

// Templates

func (s *CatalogService) ListPublishedTemplates(ctx context.Context, category model.TemplateCategory, limit, offset int) ([]model.InvitationTemplate, int, error) {
	templates, err := s.templateRepo.FindPublished(ctx, category, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.templateRepo.CountPublished(ctx, category)
	if err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

// GetPublishedTemplate returns nil for unknown slugs and for drafts, so the
// public site cannot probe unpublished work.
func (s *CatalogService) GetPublishedTemplate(ctx context.Context, slug string) (*model.InvitationTemplate, error) {
	tpl, err := s.templateRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if tpl == nil || !tpl.IsPublished {
		return nil, nil
	}
	return tpl, nil
}

func (s *CatalogService) ListTemplates(ctx context.Context, limit, offset int) ([]model.InvitationTemplate, int, error) {
	templates, err := s.templateRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.templateRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

func (s *CatalogService) CreateTemplate(ctx context.Context, params model.CreateTemplateParams) (*model.InvitationTemplate, error) {
	return s.templateRepo.Create(ctx, params)
}

func (s *CatalogService) UpdateTemplate(ctx context.Context, id string, params model.UpdateTemplateParams) (*model.InvitationTemplate, error) {
	return s.templateRepo.Update(ctx, id, params)
}

func (s *CatalogService) DeleteTemplate(ctx context.Context, id string) error {
	return s.templateRepo.Delete(ctx, id)
}

// Hantaran packages

func (s *CatalogService) ListPublishedHantaran(ctx context.Context, limit, offset int) ([]model.HantaranPackage, int, error) {
	packages, err := s.hantaranRepo.FindPublished(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.hantaranRepo.CountPublished(ctx)
	if err != nil {
		return nil, 0, err
	}
	return packages, total, nil
}

func (s *CatalogService) ListHantaran(ctx context.Context, limit, offset int) ([]model.HantaranPackage, int, error) {
	packages, err := s.hantaranRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.hantaranRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return packages, total, nil
}

func (s *CatalogService) CreateHantaran(ctx context.Context, params model.CreateHantaranParams) (*model.HantaranPackage, error) {
	return s.hantaranRepo.Create(ctx, params)
}

func (s *CatalogService) UpdateHantaran(ctx context.Context, id string, params model.UpdateHantaranParams) (*model.HantaranPackage, error) {
	return s.hantaranRepo.Update(ctx, id, params)
}

func (s *CatalogService) DeleteHantaran(ctx context.Context, id string) error {
	return s.hantaranRepo.Delete(ctx, id)
}

// Wedding services

func (s *CatalogService) ListPublishedServices(ctx context.Context, limit, offset int) ([]model.WeddingService, error) {
	return s.serviceRepo.FindPublished(ctx, limit, offset)
}

func (s *CatalogService) ListServices(ctx context.Context, limit, offset int) ([]model.WeddingService, int, error) {
	services, err := s.serviceRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.serviceRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (s *CatalogService) CreateService(ctx context.Context, params model.CreateWeddingServiceParams) (*model.WeddingService, error) {
	return s.serviceRepo.Create(ctx, params)
}

func (s *CatalogService) UpdateService(ctx context.Context, id string, params model.UpdateWeddingServiceParams) (*model.WeddingService, error) {
	return s.serviceRepo.Update(ctx, id, params)
}

func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	return s.serviceRepo.Delete(ctx, id)
}
