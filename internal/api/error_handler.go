package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devnexus/marketplace-console/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Error: ve.Error(), Code: "validation_failed", Fields: ve.Fields}
	}

	// Known domain errors → deterministic HTTP codes. Backend categories
	// come last: a wrapped BackendError also matches ErrBackend.
	switch {
	case errors.Is(err, domain.ErrVerificationRequired):
		return http.StatusForbidden, errorResponse{Error: "email verification required", Code: "verification_required"}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: "validation_failed"}
	case errors.Is(err, domain.ErrNoDraftIdentity),
		errors.Is(err, domain.ErrIncomplete),
		errors.Is(err, domain.ErrOperationInProgress),
		errors.Is(err, domain.ErrInvalidStep):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrWizardClosed):
		return http.StatusGone, errorResponse{Error: "submission wizard is closed"}
	case errors.Is(err, domain.ErrNoActiveWizard):
		return http.StatusNotFound, errorResponse{Error: "no submission in progress"}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: backendMessage(err, "unauthorized")}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: backendMessage(err, "access forbidden")}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: backendMessage(err, "not found")}
	case errors.Is(err, domain.ErrBackend):
		log.Warn().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("backend request failed")
		return http.StatusBadGateway, errorResponse{Error: backendMessage(err, "backend request failed"), Code: "backend_error"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

// backendMessage surfaces the backend's own wording when there is one.
func backendMessage(err error, fallback string) string {
	var be *domain.BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}
