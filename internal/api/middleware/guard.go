package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/service"
)

// UserKey is the echo context key holding the *domain.User of an allowed request.
const UserKey = "user"

// EntryPath is where visitors without access are sent.
const EntryPath = "/"

// SessionSource exposes the current session snapshot.
type SessionSource interface {
	Snapshot() domain.Session
}

type loadingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Guard gates a route on the session. An empty role list admits any
// authenticated user.
func Guard(sessions SessionSource, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := sessions.Snapshot()
			d := service.Guard(s, allowedRoles, c.Request().URL.RequestURI())

			switch d.Outcome {
			case domain.GuardLoading:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, loadingResponse{
					Status:  d.Outcome.String(),
					Message: "verifying authentication",
				})
			case domain.GuardRedirectToEntry:
				return c.Redirect(http.StatusFound, EntryPath+"?from="+url.QueryEscape(d.From))
			case domain.GuardRedirectAway:
				return c.Redirect(http.StatusFound, EntryPath)
			}

			c.Set(UserKey, s.User)
			return next(c)
		}
	}
}
