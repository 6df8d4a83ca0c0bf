package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/devnexus/marketplace-console/internal/pkg/requestid"
)

// PropagateRequestID hands the id assigned by echo's RequestID middleware to
// the request context so backend calls carry the same id.
func PropagateRequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			req := c.Request()
			c.SetRequest(req.WithContext(requestid.With(req.Context(), id)))
			return next(c)
		}
	}
}
