package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// CatalogService is a thin pass-through for the listing views.
type CatalogService struct {
	catalog  ports.CatalogAPI
	projects ports.ProjectAPI
	logger   zerolog.Logger
}

var _ ports.CatalogService = (*CatalogService)(nil)

func NewCatalogService(catalog ports.CatalogAPI, projects ports.ProjectAPI, logger zerolog.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, projects: projects, logger: logger}
}

func (s *CatalogService) Marketplace(ctx context.Context, page, limit int) (*domain.Page[domain.MarketplaceItem], error) {
	page, limit = normalisePage(page, limit)
	p, err := s.catalog.Marketplace(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list marketplace: %w", err)
	}
	return p, nil
}

func (s *CatalogService) Discover(ctx context.Context, q ports.DiscoverQuery) (*domain.Page[domain.Project], error) {
	q.Page, q.Limit = clampPage(q.Page, q.Limit)
	p, err := s.catalog.Discover(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("discover projects: %w", err)
	}
	return p, nil
}

func (s *CatalogService) Suggestions(ctx context.Context) ([]domain.Project, error) {
	items, err := s.catalog.Suggestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover suggestions: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Project(ctx context.Context, id string) (*domain.Project, error) {
	id, err := domain.ParseProjectID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return p, nil
}

// ContactLinks prepares the purchase request links for a listing that is
// for sale.
func (s *CatalogService) ContactLinks(ctx context.Context, id string) (*domain.ContactLinks, error) {
	p, err := s.Project(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Marketplace.IsForSale {
		return nil, fmt.Errorf("%w: project %s is not for sale", domain.ErrNotFound, p.ID)
	}
	links := domain.BuildContactLinks(p.BasicInfo.Title, p.Marketplace.Contact)
	return &links, nil
}

// clampPage leaves unset paging at zero so the backend applies its own
// defaults, and only bounds what the caller asked for.
func clampPage(page, limit int) (int, int) {
	if page < 0 {
		page = 0
	}
	if limit < 0 {
		limit = 0
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func normalisePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
