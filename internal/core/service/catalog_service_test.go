package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
)

func TestCatalog_MarketplaceNormalisesPaging(t *testing.T) {
	var gotPage, gotLimit int
	api := &stubCatalogAPI{marketplaceFn: func(_ context.Context, page, limit int) (*domain.Page[domain.MarketplaceItem], error) {
		gotPage, gotLimit = page, limit
		return &domain.Page[domain.MarketplaceItem]{}, nil
	}}
	svc := NewCatalogService(api, &stubProjectAPI{}, zerolog.Nop())

	if _, err := svc.Marketplace(context.Background(), 0, 500); err != nil {
		t.Fatalf("Marketplace returned error: %v", err)
	}
	if gotPage != 1 || gotLimit != maxPageSize {
		t.Fatalf("unexpected paging: page=%d limit=%d", gotPage, gotLimit)
	}
}

func TestCatalog_DiscoverDefaults(t *testing.T) {
	var got ports.DiscoverQuery
	api := &stubCatalogAPI{discoverFn: func(_ context.Context, q ports.DiscoverQuery) (*domain.Page[domain.Project], error) {
		got = q
		return &domain.Page[domain.Project]{}, nil
	}}
	svc := NewCatalogService(api, &stubProjectAPI{}, zerolog.Nop())

	if _, err := svc.Discover(context.Background(), ports.DiscoverQuery{Category: "AI Tools"}); err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if got.Page != 0 || got.Limit != 0 || got.Category != "AI Tools" {
		t.Fatalf("unset paging must stay unset: %+v", got)
	}

	if _, err := svc.Discover(context.Background(), ports.DiscoverQuery{Page: 2, Limit: 500}); err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if got.Page != 2 || got.Limit != maxPageSize {
		t.Fatalf("unexpected paging: %+v", got)
	}
}

func TestCatalog_MarketplaceDefaultPaging(t *testing.T) {
	var gotPage, gotLimit int
	api := &stubCatalogAPI{marketplaceFn: func(_ context.Context, page, limit int) (*domain.Page[domain.MarketplaceItem], error) {
		gotPage, gotLimit = page, limit
		return &domain.Page[domain.MarketplaceItem]{}, nil
	}}
	svc := NewCatalogService(api, &stubProjectAPI{}, zerolog.Nop())

	if _, err := svc.Marketplace(context.Background(), 0, 0); err != nil {
		t.Fatalf("Marketplace returned error: %v", err)
	}
	if gotPage != 1 || gotLimit != 10 {
		t.Fatalf("expected page=1 limit=10, got page=%d limit=%d", gotPage, gotLimit)
	}
}

func TestCatalog_ProjectValidatesID(t *testing.T) {
	projects := &stubProjectAPI{getFn: func(context.Context, string) (*domain.Project, error) {
		t.Fatalf("backend must not be called for a malformed id")
		return nil, nil
	}}
	svc := NewCatalogService(&stubCatalogAPI{}, projects, zerolog.Nop())

	if _, err := svc.Project(context.Background(), "not-an-id"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCatalog_ContactLinks(t *testing.T) {
	project := &domain.Project{
		ID:        testProjectID,
		BasicInfo: domain.BasicInfo{Title: "Todo AI"},
		Marketplace: domain.Marketplace{
			IsForSale: true,
			Price:     49,
			Contact:   domain.Contact{Email: "seller@example.com", WhatsApp: "+1 (555) 010-2030"},
		},
	}
	projects := &stubProjectAPI{getFn: func(_ context.Context, id string) (*domain.Project, error) {
		if id != testProjectID {
			t.Errorf("unexpected id: %s", id)
		}
		return project, nil
	}}
	svc := NewCatalogService(&stubCatalogAPI{}, projects, zerolog.Nop())

	links, err := svc.ContactLinks(context.Background(), strings.ToUpper(testProjectID))
	if err != nil {
		t.Fatalf("ContactLinks returned error: %v", err)
	}
	if !strings.HasPrefix(links.WhatsApp, "https://wa.me/15550102030?text=") {
		t.Fatalf("unexpected whatsapp link: %s", links.WhatsApp)
	}
	if !strings.HasPrefix(links.Email, "mailto:seller@example.com?") || !strings.Contains(links.Email, "subject=Purchase%20Request%3A%20Todo%20AI") {
		t.Fatalf("unexpected email link: %s", links.Email)
	}

	project.Marketplace.IsForSale = false
	if _, err := svc.ContactLinks(context.Background(), testProjectID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a listing not for sale, got %v", err)
	}
}
