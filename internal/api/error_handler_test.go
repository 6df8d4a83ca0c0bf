package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devnexus/marketplace-console/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
		wantTag  string
	}{
		{"validation", domain.NewValidationError(map[string]string{"title": "title must be at least 3 characters"}), http.StatusUnprocessableEntity, "title must be at least 3 characters", "validation_failed"},
		{"verification", fmt.Errorf("%w: backend said so", domain.ErrVerificationRequired), http.StatusForbidden, "email verification required", "verification_required"},
		{"unauthorized", &domain.BackendError{Status: 401, Message: "Invalid credentials"}, http.StatusUnauthorized, "Invalid credentials", ""},
		{"forbidden", &domain.BackendError{Status: 403, Message: "Not your project"}, http.StatusForbidden, "Not your project", ""},
		{"not found", fmt.Errorf("get project: %w", &domain.BackendError{Status: 404, Message: "Project not found"}), http.StatusNotFound, "Project not found", ""},
		{"in progress", domain.ErrOperationInProgress, http.StatusConflict, "another operation is in progress", ""},
		{"incomplete", fmt.Errorf("%w: 87%% complete", domain.ErrIncomplete), http.StatusConflict, "project is not complete: 87% complete", ""},
		{"no identity", domain.ErrNoDraftIdentity, http.StatusConflict, "draft project has not been saved yet", ""},
		{"closed", domain.ErrWizardClosed, http.StatusGone, "submission wizard is closed", ""},
		{"no wizard", domain.ErrNoActiveWizard, http.StatusNotFound, "no submission in progress", ""},
		{"backend", &domain.BackendError{Message: "request timed out"}, http.StatusBadGateway, "request timed out", "backend_error"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload", ""},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error", ""},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.wantBody || body.Code != tc.wantTag {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationFields(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.NewValidationError(map[string]string{
		"title":       "title must be at least 3 characters",
		"description": "description must be at least 10 characters",
	}), c)

	var body errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if len(body.Fields) != 2 || body.Fields["description"] == "" {
		t.Fatalf("expected per-field messages, got %+v", body)
	}
}
