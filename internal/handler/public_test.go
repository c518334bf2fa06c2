package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inarawedding/site-server-go/internal/model"
	"github.com/inarawedding/site-server-go/internal/repository"
	"github.com/inarawedding/site-server-go/internal/service"
)

type mockTemplateRepo struct {
	mock.Mock
}

func (m *mockTemplateRepo) FindByID(ctx context.Context, id string) (*model.InvitationTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvitationTemplate), args.Error(1)
}

func (m *mockTemplateRepo) FindBySlug(ctx context.Context, slug string) (*model.InvitationTemplate, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvitationTemplate), args.Error(1)
}

func (m *mockTemplateRepo) FindAll(ctx context.Context, limit, offset int) ([]model.InvitationTemplate, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]model.InvitationTemplate), args.Error(1)
}

func (m *mockTemplateRepo) FindPublished(ctx context.Context, category model.TemplateCategory, limit, offset int) ([]model.InvitationTemplate, error) {
	args := m.Called(ctx, category, limit, offset)
	return args.Get(0).([]model.InvitationTemplate), args.Error(1)
}

func (m *mockTemplateRepo) Create(ctx context.Context, params model.CreateTemplateParams) (*model.InvitationTemplate, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvitationTemplate), args.Error(1)
}

func (m *mockTemplateRepo) Update(ctx context.Context, id string, params model.UpdateTemplateParams) (*model.InvitationTemplate, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvitationTemplate), args.Error(1)
}

func (m *mockTemplateRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockTemplateRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockTemplateRepo) CountPublished(ctx context.Context, category model.TemplateCategory) (int, error) {
	args := m.Called(ctx, category)
	return args.Int(0), args.Error(1)
}

type mockBlogPostRepo struct {
	mock.Mock
}

func (m *mockBlogPostRepo) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *mockBlogPostRepo) FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *mockBlogPostRepo) FindAll(ctx context.Context, limit, offset int) ([]model.BlogPost, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]model.BlogPost), args.Error(1)
}

func (m *mockBlogPostRepo) FindPublished(ctx context.Context, limit, offset int) ([]model.BlogPost, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]model.BlogPost), args.Error(1)
}

func (m *mockBlogPostRepo) Create(ctx context.Context, params model.CreateBlogPostParams) (*model.BlogPost, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *mockBlogPostRepo) Update(ctx context.Context, id string, params model.UpdateBlogPostParams) (*model.BlogPost, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *mockBlogPostRepo) SetPublished(ctx context.Context, id string, published bool, publishedAt *time.Time) (*model.BlogPost, error) {
	args := m.Called(ctx, id, published, publishedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *mockBlogPostRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBlogPostRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newPublicTestServer(templateRepo repository.TemplateRepository, postRepo repository.BlogPostRepository) http.Handler {
	catalogService := service.NewCatalogService(templateRepo, nil, nil)
	blogService := service.NewBlogService(postRepo, nil)
	return NewPublicHandler(catalogService, blogService).Routes()
}

func TestListTemplates(t *testing.T) {
	t.Run("returns published templates with total", func(t *testing.T) {
		templates := []model.InvitationTemplate{
			{ID: "t1", Slug: "sakura", Name: "Sakura", Category: model.TemplateCategoryFloral, IsPublished: true},
			{ID: "t2", Slug: "monochrome", Name: "Monochrome", Category: model.TemplateCategoryMinimalist, IsPublished: true},
		}
		repo := new(mockTemplateRepo)
		repo.On("FindPublished", mock.Anything, model.TemplateCategory(""), DefaultLimit, 0).Return(templates, nil)
		repo.On("CountPublished", mock.Anything, model.TemplateCategory("")).Return(2, nil)

		handler := newPublicTestServer(repo, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Items []model.InvitationTemplate `json:"items"`
			Total int                        `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Items, 2)
		assert.Equal(t, 2, body.Total)
	})

	t.Run("filters by category", func(t *testing.T) {
		repo := new(mockTemplateRepo)
		repo.On("FindPublished", mock.Anything, model.TemplateCategoryFloral, DefaultLimit, 0).
			Return([]model.InvitationTemplate{}, nil)
		repo.On("CountPublished", mock.Anything, model.TemplateCategoryFloral).Return(0, nil)

		handler := newPublicTestServer(repo, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates?category=floral", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		repo := new(mockTemplateRepo)

		handler := newPublicTestServer(repo, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates?category=gothic", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		repo.AssertNotCalled(t, "FindPublished", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetTemplate(t *testing.T) {
	t.Run("published template by slug", func(t *testing.T) {
		tpl := &model.InvitationTemplate{ID: "t1", Slug: "sakura", Name: "Sakura", IsPublished: true}
		repo := new(mockTemplateRepo)
		repo.On("FindBySlug", mock.Anything, "sakura").Return(tpl, nil)

		handler := newPublicTestServer(repo, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates/sakura", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var got model.InvitationTemplate
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "sakura", got.Slug)
	})

	t.Run("draft template is a 404", func(t *testing.T) {
		draft := &model.InvitationTemplate{ID: "t1", Slug: "wip", IsPublished: false}
		repo := new(mockTemplateRepo)
		repo.On("FindBySlug", mock.Anything, "wip").Return(draft, nil)

		handler := newPublicTestServer(repo, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates/wip", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown slug is a 404", func(t *testing.T) {
		repo := new(mockTemplateRepo)
		repo.On("FindBySlug", mock.Anything, "nope").Return(nil, nil)

		handler := newPublicTestServer(repo, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetPost(t *testing.T) {
	t.Run("published post by slug", func(t *testing.T) {
		now := time.Now()
		post := &model.BlogPost{ID: "p1", Slug: "venue-guide", Title: "Venue Guide", IsPublished: true, PublishedAt: &now}
		repo := new(mockBlogPostRepo)
		repo.On("FindBySlug", mock.Anything, "venue-guide").Return(post, nil)

		handler := newPublicTestServer(nil, repo)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/venue-guide", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var got model.BlogPost
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "venue-guide", got.Slug)
	})

	t.Run("draft post is a 404", func(t *testing.T) {
		draft := &model.BlogPost{ID: "p1", Slug: "draft", IsPublished: false}
		repo := new(mockBlogPostRepo)
		repo.On("FindBySlug", mock.Anything, "draft").Return(draft, nil)

		handler := newPublicTestServer(nil, repo)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/draft", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPaginationParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := ParsePagination(httptest.NewRequest(http.MethodGet, "/templates", nil))
		assert.Equal(t, DefaultLimit, p.Limit)
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("clamps oversized limit", func(t *testing.T) {
		p := ParsePagination(httptest.NewRequest(http.MethodGet, "/templates?limit=9999", nil))
		assert.Equal(t, DefaultLimit, p.Limit)
	})

	t.Run("negative offset resets to zero", func(t *testing.T) {
		p := ParsePagination(httptest.NewRequest(http.MethodGet, "/templates?limit=10&offset=-5", nil))
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, 0, p.Offset)
	})
}
