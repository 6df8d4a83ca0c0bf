package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
)

func multipartBody(t *testing.T, field string, files map[string][]byte, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for name, data := range files {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestWizardHandler_Open(t *testing.T) {
	wizards := &stubWizards{}
	h := NewWizardHandler(wizards, UploadLimits{MaxFiles: 3})

	c, rec := newTestContext(http.MethodPost, "/api/wizard", nil, "")
	if err := h.Open(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if wizards.opened != 1 {
		t.Fatalf("expected one wizard opened, got %d", wizards.opened)
	}

	var st domain.WizardState
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if st.Step != domain.StepBasicInfo || st.StepName != "basic_info" {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestWizardHandler_StateWithoutWizard(t *testing.T) {
	h := NewWizardHandler(&stubWizards{}, UploadLimits{})

	c, _ := newTestContext(http.MethodGet, "/api/wizard", nil, "")
	if err := h.State(c); !errors.Is(err, domain.ErrNoActiveWizard) {
		t.Fatalf("expected ErrNoActiveWizard, got %v", err)
	}
}

func TestWizardHandler_SetBasicInfo(t *testing.T) {
	wizards := &stubWizards{}
	wizards.Open()
	h := NewWizardHandler(wizards, UploadLimits{})

	body := strings.NewReader(`{"title":"Prompt Forge","description":"Prompt tooling for teams","category":"AI Tools","tagsText":"ai, prompts"}`)
	c, rec := newTestContext(http.MethodPut, "/api/wizard/basic-info", body, echo.MIMEApplicationJSON)
	if err := h.SetBasicInfo(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	got := wizards.current.basicInfo
	if got.Title != "Prompt Forge" || got.TagsText != "ai, prompts" {
		t.Fatalf("unexpected input forwarded: %+v", got)
	}
}

func TestWizardHandler_NextPropagatesStepError(t *testing.T) {
	wizards := &stubWizards{}
	wizards.Open()
	wizards.current.err = domain.NewValidationError(map[string]string{"title": "title is required"})
	h := NewWizardHandler(wizards, UploadLimits{})

	c, _ := newTestContext(http.MethodPost, "/api/wizard/next", nil, "")
	var ve *domain.ValidationError
	if err := h.Next(c); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWizardHandler_UploadMedia(t *testing.T) {
	wizards := &stubWizards{}
	wizards.Open()
	h := NewWizardHandler(wizards, UploadLimits{MaxFiles: 3, MaxBytes: 1 << 20})

	body, ct := multipartBody(t, mediaField,
		map[string][]byte{"a.png": pngBytes, "b.png": pngBytes},
		map[string]string{"kind": "screenshot"})
	c, rec := newTestContext(http.MethodPost, "/api/wizard/media", body, ct)

	if err := h.UploadMedia(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	w := wizards.current
	if w.kind != domain.MediaScreenshot || len(w.uploads) != 2 {
		t.Fatalf("unexpected upload forwarded: kind=%s files=%d", w.kind, len(w.uploads))
	}
	if !bytes.Equal(w.uploads[0].Data, pngBytes) {
		t.Fatalf("file content not forwarded")
	}
}

func TestWizardHandler_UploadMedia_Limits(t *testing.T) {
	cases := []struct {
		name   string
		files  map[string][]byte
		limits UploadLimits
	}{
		{"no files", map[string][]byte{}, UploadLimits{MaxFiles: 3}},
		{"too many files", map[string][]byte{"a.png": pngBytes, "b.png": pngBytes}, UploadLimits{MaxFiles: 1}},
		{"too large", map[string][]byte{"a.png": pngBytes}, UploadLimits{MaxFiles: 3, MaxBytes: 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wizards := &stubWizards{}
			wizards.Open()
			h := NewWizardHandler(wizards, tc.limits)

			body, ct := multipartBody(t, mediaField, tc.files, map[string]string{"kind": "screenshot"})
			c, _ := newTestContext(http.MethodPost, "/api/wizard/media", body, ct)

			var ve *domain.ValidationError
			if err := h.UploadMedia(c); !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if wizards.current.uploads != nil {
				t.Fatalf("wizard should not receive files")
			}
		})
	}
}

func TestWizardHandler_Confirm(t *testing.T) {
	wizards := &stubWizards{}
	wizards.Open()
	wizards.current.state.Draft.ID = "64b7f0c2a1b2c3d4e5f60718"
	h := NewWizardHandler(wizards, UploadLimits{})

	c, rec := newTestContext(http.MethodPost, "/api/wizard/confirm", strings.NewReader(`{"outcome":"submit"}`), echo.MIMEApplicationJSON)
	if err := h.Confirm(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var res ports.ConfirmResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if res.Outcome != domain.OutcomeSubmit || res.RedirectTo != "/profile" || res.ProjectID != "64b7f0c2a1b2c3d4e5f60718" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestWizardHandler_Confirm_UnknownOutcome(t *testing.T) {
	wizards := &stubWizards{}
	wizards.Open()
	h := NewWizardHandler(wizards, UploadLimits{})

	c, _ := newTestContext(http.MethodPost, "/api/wizard/confirm", strings.NewReader(`{"outcome":"publish"}`), echo.MIMEApplicationJSON)

	var ve *domain.ValidationError
	if err := h.Confirm(c); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if wizards.current.outcome != "" {
		t.Fatalf("wizard should not be confirmed")
	}
}

func TestWizardHandler_Cancel(t *testing.T) {
	wizards := &stubWizards{}
	wizards.Open()
	h := NewWizardHandler(wizards, UploadLimits{})

	c, rec := newTestContext(http.MethodPost, "/api/wizard/cancel", nil, "")
	if err := h.Cancel(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || !wizards.current.cancelled {
		t.Fatalf("expected 204 and a cancelled wizard, got %d", rec.Code)
	}
}
