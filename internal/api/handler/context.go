package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devnexus/marketplace-console/internal/api/middleware"
	"github.com/devnexus/marketplace-console/internal/core/domain"
)

// currentUser returns the identity the Guard middleware admitted. Its
// absence means the route was registered without the guard.
func currentUser(c echo.Context) (*domain.User, error) {
	u, _ := c.Get(middleware.UserKey).(*domain.User)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated user")
	}
	return u, nil
}

// bind decodes the request body and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}
