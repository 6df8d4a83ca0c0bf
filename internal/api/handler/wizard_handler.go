package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
)

const mediaField = "media"

// WizardHandler exposes the submission wizard. Every route acts on the
// single wizard held by the manager.
type WizardHandler struct {
	wizards ports.WizardManager
	limits  UploadLimits
}

func NewWizardHandler(wizards ports.WizardManager, limits UploadLimits) *WizardHandler {
	return &WizardHandler{wizards: wizards, limits: limits}
}

type confirmRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=submit draft"`
}

// Open starts an empty submission, discarding any previous one.
//
// @Summary      Start a submission
// @Tags         wizard
// @Produce      json
// @Success      201  {object}  domain.WizardState
// @Failure      302  "redirect when not signed in as seller or admin"
// @Router       /api/wizard [post]
func (h *WizardHandler) Open(c echo.Context) error {
	w := h.wizards.Open()
	return c.JSON(http.StatusCreated, w.State())
}

// State returns the current step, draft and completion.
//
// @Summary      Submission state
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  domain.WizardState
// @Failure      404  {object}  map[string]string
// @Router       /api/wizard [get]
func (h *WizardHandler) State(c echo.Context) error {
	w, err := h.wizards.Current()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w.State())
}

// SetBasicInfo replaces the step 1 fields.
//
// @Summary      Edit basic info
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        body  body      ports.BasicInfoInput  true  "Title, description, category, tags"
// @Success      200   {object}  domain.WizardState
// @Failure      409   {object}  map[string]string
// @Router       /api/wizard/basic-info [put]
func (h *WizardHandler) SetBasicInfo(c echo.Context) error {
	var req ports.BasicInfoInput
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.apply(c, func(w ports.Wizard) (domain.WizardState, error) { return w.SetBasicInfo(req) })
}

// SetPlatform replaces the step 2 fields.
//
// @Summary      Edit platform
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        body  body      ports.PlatformInput  true  "Platform type and store links"
// @Success      200   {object}  domain.WizardState
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/wizard/platform [put]
func (h *WizardHandler) SetPlatform(c echo.Context) error {
	var req ports.PlatformInput
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.apply(c, func(w ports.Wizard) (domain.WizardState, error) { return w.SetPlatform(req) })
}

// SetMarketplace replaces the step 4 fields.
//
// @Summary      Edit sale terms
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        body  body      ports.MarketplaceInput  true  "Sale flag, price and contact"
// @Success      200   {object}  domain.WizardState
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/wizard/marketplace [put]
func (h *WizardHandler) SetMarketplace(c echo.Context) error {
	var req ports.MarketplaceInput
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.apply(c, func(w ports.Wizard) (domain.WizardState, error) { return w.SetMarketplace(req) })
}

// Next advances one step, persisting the draft when leaving the platform step.
//
// @Summary      Next step
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  domain.WizardState
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/wizard/next [post]
func (h *WizardHandler) Next(c echo.Context) error {
	ctx := c.Request().Context()
	return h.apply(c, func(w ports.Wizard) (domain.WizardState, error) { return w.Next(ctx) })
}

// Back returns to the previous step.
//
// @Summary      Previous step
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  domain.WizardState
// @Failure      409  {object}  map[string]string
// @Router       /api/wizard/back [post]
func (h *WizardHandler) Back(c echo.Context) error {
	return h.apply(c, func(w ports.Wizard) (domain.WizardState, error) { return w.Back() })
}

// UploadMedia uploads a thumbnail or screenshots for the saved draft.
//
// @Summary      Upload media
// @Tags         wizard
// @Accept       multipart/form-data
// @Produce      json
// @Param        kind   formData  string  true  "thumbnail or screenshot"
// @Param        media  formData  file    true  "Image files"
// @Success      200    {object}  domain.WizardState
// @Failure      409    {object}  map[string]string
// @Failure      422    {object}  map[string]string
// @Failure      502    {object}  map[string]string
// @Router       /api/wizard/media [post]
func (h *WizardHandler) UploadMedia(c echo.Context) error {
	files, err := readUploads(c, mediaField, h.limits)
	if err != nil {
		return err
	}
	kind := domain.MediaKind(c.FormValue("kind"))
	ctx := c.Request().Context()
	return h.apply(c, func(w ports.Wizard) (domain.WizardState, error) { return w.UploadMedia(ctx, kind, files) })
}

// OpenConfirmation shows the hand-off overlay on a complete review.
//
// @Summary      Open confirmation
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  domain.WizardState
// @Failure      409  {object}  map[string]string
// @Router       /api/wizard/confirmation [post]
func (h *WizardHandler) OpenConfirmation(c echo.Context) error {
	return h.apply(c, func(w ports.Wizard) (domain.WizardState, error) { return w.OpenConfirmation() })
}

// DismissConfirmation closes the overlay without acting.
//
// @Summary      Dismiss confirmation
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  domain.WizardState
// @Router       /api/wizard/confirmation [delete]
func (h *WizardHandler) DismissConfirmation(c echo.Context) error {
	return h.apply(c, func(w ports.Wizard) (domain.WizardState, error) { return w.DismissConfirmation() })
}

// Confirm submits the project for review or keeps it as a draft.
//
// @Summary      Confirm hand-off
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        body  body      confirmRequest  true  "submit or draft"
// @Success      200   {object}  ports.ConfirmResult
// @Failure      409   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/wizard/confirm [post]
func (h *WizardHandler) Confirm(c echo.Context) error {
	var req confirmRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	w, err := h.wizards.Current()
	if err != nil {
		return err
	}
	res, err := w.Confirm(c.Request().Context(), domain.ConfirmOutcome(req.Outcome))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Cancel saves a persisted draft and closes the wizard.
//
// @Summary      Cancel submission
// @Tags         wizard
// @Success      204
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/wizard/cancel [post]
func (h *WizardHandler) Cancel(c echo.Context) error {
	w, err := h.wizards.Current()
	if err != nil {
		return err
	}
	if err := w.Cancel(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WizardHandler) apply(c echo.Context, fn func(ports.Wizard) (domain.WizardState, error)) error {
	w, err := h.wizards.Current()
	if err != nil {
		return err
	}
	st, err := fn(w)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}
