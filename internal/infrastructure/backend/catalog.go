package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
)

const (
	pathMarketplace = "/api/marketplace"
	pathDiscover    = "/api/discover"
)

func (c *Client) Marketplace(ctx context.Context, page, limit int) (*domain.Page[domain.MarketplaceItem], error) {
	q := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	var env envelope
	if err := c.getJSON(ctx, "marketplace_list", pathMarketplace, q, &env); err != nil {
		return nil, err
	}
	p, err := decodePage[domain.MarketplaceItem](&env)
	if err != nil {
		return nil, &domain.BackendError{Status: http.StatusOK, Message: "malformed response: " + err.Error()}
	}
	return p, nil
}

func (c *Client) Discover(ctx context.Context, dq ports.DiscoverQuery) (*domain.Page[domain.Project], error) {
	var env envelope
	if err := c.getJSON(ctx, "discover_list", pathDiscover, discoverValues(dq), &env); err != nil {
		return nil, err
	}
	p, err := decodePage[domain.Project](&env)
	if err != nil {
		return nil, &domain.BackendError{Status: http.StatusOK, Message: "malformed response: " + err.Error()}
	}
	return p, nil
}

func (c *Client) Suggestions(ctx context.Context) ([]domain.Project, error) {
	var env envelope
	if err := c.getJSON(ctx, "discover_suggestions", pathDiscover+"/suggestions", nil, &env); err != nil {
		return nil, err
	}
	items, err := decodeList[domain.Project](&env)
	if err != nil {
		return nil, &domain.BackendError{Status: http.StatusOK, Message: "malformed response: " + err.Error()}
	}
	return items, nil
}

// discoverValues drops zero filters and the "All" pseudo-category, and
// turns categories into the backend's slug form ("AI Tools" → "ai-tools").
func discoverValues(dq ports.DiscoverQuery) url.Values {
	q := url.Values{}
	if dq.Limit > 0 {
		q.Set("limit", strconv.Itoa(dq.Limit))
	}
	if dq.Page > 0 {
		q.Set("page", strconv.Itoa(dq.Page))
	}
	if cat := strings.TrimSpace(dq.Category); cat != "" && !strings.EqualFold(cat, "all") {
		q.Set("category", strings.Join(strings.Fields(strings.ToLower(cat)), "-"))
	}
	if s := strings.TrimSpace(dq.Search); s != "" {
		q.Set("search", s)
	}
	return q
}
