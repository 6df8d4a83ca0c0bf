package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devnexus/marketplace-console/internal/core/ports"
)

type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Marketplace lists projects for sale.
//
// @Summary      Marketplace
// @Tags         catalog
// @Produce      json
// @Param        page   query     int  false  "Page, from 1"
// @Param        limit  query     int  false  "Page size, at most 50"
// @Success      200    {object}  domain.Page[domain.MarketplaceItem]
// @Failure      502    {object}  map[string]string
// @Router       /api/marketplace [get]
func (h *CatalogHandler) Marketplace(c echo.Context) error {
	var page, limit int
	if err := echo.QueryParamsBinder(c).Int("page", &page).Int("limit", &limit).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}
	p, err := h.catalog.Marketplace(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Discover lists approved projects with optional filters.
//
// @Summary      Discover
// @Tags         catalog
// @Produce      json
// @Param        page      query     int     false  "Page, from 1"
// @Param        limit     query     int     false  "Page size, at most 50"
// @Param        category  query     string  false  "Category name; All means no filter"
// @Param        search    query     string  false  "Free text"
// @Success      200       {object}  domain.Page[domain.Project]
// @Failure      502       {object}  map[string]string
// @Router       /api/discover [get]
func (h *CatalogHandler) Discover(c echo.Context) error {
	var q ports.DiscoverQuery
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		String("category", &q.Category).
		String("search", &q.Search).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}
	p, err := h.catalog.Discover(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Suggestions lists the discover page's suggested projects.
//
// @Summary      Suggestions
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Project
// @Failure      502  {object}  map[string]string
// @Router       /api/discover/suggestions [get]
func (h *CatalogHandler) Suggestions(c echo.Context) error {
	items, err := h.catalog.Suggestions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Project returns one project's detail.
//
// @Summary      Project detail
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Project id (24 hex characters)"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/projects/{id} [get]
func (h *CatalogHandler) Project(c echo.Context) error {
	p, err := h.catalog.Project(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Contact builds the purchase request links for a listing.
//
// @Summary      Seller contact links
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Project id (24 hex characters)"
// @Success      200  {object}  domain.ContactLinks
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/marketplace/{id}/contact [get]
func (h *CatalogHandler) Contact(c echo.Context) error {
	links, err := h.catalog.ContactLinks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, links)
}
