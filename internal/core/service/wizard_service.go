package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
	"github.com/devnexus/marketplace-console/internal/pkg/metrics"
	"github.com/devnexus/marketplace-console/internal/pkg/validation"
)

// ProfileRedirect is where the console sends the user after a hand-off.
const ProfileRedirect = "/profile"

const defaultMaxUploadFiles = 10

type basicInfoRules struct {
	Title       string `json:"title"       validate:"min=3"`
	Description string `json:"description" validate:"min=10"`
}

type platformRules struct {
	Type      string `json:"type"      validate:"oneof=Web Mobile"`
	Website   string `json:"website"   validate:"omitempty,url"`
	AppStore  string `json:"appStore"  validate:"omitempty,url"`
	PlayStore string `json:"playStore" validate:"omitempty,url"`
}

type marketplaceRules struct {
	Price        float64 `json:"price"        validate:"gte=0"`
	ContactEmail string  `json:"contactEmail" validate:"omitempty,email"`
}

// WizardService drives one submission. State is guarded by mu; backend calls
// run with mu released and busy set, so a second mutation in the meantime is
// rejected instead of queued. A media upload sets uploading instead: step
// changes still go through, anything that persists the draft waits.
type WizardService struct {
	projects ports.ProjectAPI
	validate *validator.Validate
	logger   zerolog.Logger
	maxFiles int

	mu               sync.Mutex
	step             domain.Step
	draft            domain.DraftProject
	confirmationOpen bool
	busy             bool
	uploading        bool
	closed           bool
}

var _ ports.Wizard = (*WizardService)(nil)

func NewWizardService(projects ports.ProjectAPI, maxFiles int, logger zerolog.Logger) *WizardService {
	if maxFiles <= 0 {
		maxFiles = defaultMaxUploadFiles
	}
	return &WizardService{
		projects: projects,
		validate: validation.New(),
		logger:   logger,
		maxFiles: maxFiles,
		step:     domain.StepBasicInfo,
		draft:    domain.NewDraftProject(),
	}
}

func (w *WizardService) State() domain.WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *WizardService) SetBasicInfo(in ports.BasicInfoInput) (domain.WizardState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editableLocked(domain.StepBasicInfo); err != nil {
		return w.stateLocked(), err
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = domain.DefaultCategory
	}
	w.draft.BasicInfo = domain.BasicInfo{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		Tags:        ParseTags(in.Tags, in.TagsText),
	}
	return w.stateLocked(), nil
}

func (w *WizardService) SetPlatform(in ports.PlatformInput) (domain.WizardState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editableLocked(domain.StepPlatform); err != nil {
		return w.stateLocked(), err
	}

	rules := platformRules{
		Type:      strings.TrimSpace(in.Type),
		Website:   strings.TrimSpace(in.Website),
		AppStore:  strings.TrimSpace(in.AppStore),
		PlayStore: strings.TrimSpace(in.PlayStore),
	}
	if rules.Type == "" {
		rules.Type = domain.PlatformWeb
	}
	if err := validation.Struct(w.validate, rules); err != nil {
		return w.stateLocked(), err
	}

	w.draft.Platform = domain.Platform{
		Type: rules.Type,
		URLs: domain.PlatformURLs{
			Website:   rules.Website,
			AppStore:  rules.AppStore,
			PlayStore: rules.PlayStore,
		},
	}
	return w.stateLocked(), nil
}

func (w *WizardService) SetMarketplace(in ports.MarketplaceInput) (domain.WizardState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editableLocked(domain.StepMarketplace); err != nil {
		return w.stateLocked(), err
	}

	rules := marketplaceRules{Price: in.Price, ContactEmail: strings.TrimSpace(in.ContactEmail)}
	if err := validation.Struct(w.validate, rules); err != nil {
		return w.stateLocked(), err
	}

	w.draft.Marketplace = domain.Marketplace{
		IsForSale: in.IsForSale,
		Price:     rules.Price,
		Contact: domain.Contact{
			Email:    rules.ContactEmail,
			WhatsApp: strings.TrimSpace(in.WhatsApp),
		},
	}
	return w.stateLocked(), nil
}

// Next advances one step. Leaving basic info validates it; leaving platform
// persists everything gathered so far and fails in place if that does.
func (w *WizardService) Next(ctx context.Context) (domain.WizardState, error) {
	w.mu.Lock()
	if err := w.readyLocked(); err != nil {
		defer w.mu.Unlock()
		return w.stateLocked(), err
	}
	if w.confirmationOpen || w.step == domain.StepReview {
		defer w.mu.Unlock()
		return w.stateLocked(), fmt.Errorf("%w: no step after %s", domain.ErrInvalidStep, w.step)
	}

	switch w.step {
	case domain.StepBasicInfo:
		defer w.mu.Unlock()
		rules := basicInfoRules{Title: w.draft.BasicInfo.Title, Description: w.draft.BasicInfo.Description}
		if err := validation.Struct(w.validate, rules); err != nil {
			metrics.WizardBlockedTotal.WithLabelValues("validation").Inc()
			return w.stateLocked(), err
		}
		w.advanceLocked(domain.StepPlatform)
		return w.stateLocked(), nil

	case domain.StepPlatform:
		if err := w.idleLocked(); err != nil {
			st := w.stateLocked()
			w.mu.Unlock()
			return st, err
		}
		draft := w.draft.Clone()
		w.busy = true
		w.mu.Unlock()

		id, err := w.persist(ctx, draft)

		w.mu.Lock()
		defer w.mu.Unlock()
		w.busy = false
		if err != nil {
			metrics.WizardBlockedTotal.WithLabelValues("persist_failed").Inc()
			w.logger.Warn().Err(err).Msg("could not persist draft, staying on platform step")
			return w.stateLocked(), err
		}
		if w.draft.ID == "" {
			w.draft.ID = id
			w.logger.Info().Str("project_id", id).Msg("draft project created")
		}
		w.advanceLocked(domain.StepMedia)
		return w.stateLocked(), nil

	default:
		defer w.mu.Unlock()
		w.advanceLocked(w.step + 1)
		return w.stateLocked(), nil
	}
}

// Back never touches the backend.
func (w *WizardService) Back() (domain.WizardState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.readyLocked(); err != nil {
		return w.stateLocked(), err
	}
	if w.step == domain.StepBasicInfo || w.confirmationOpen {
		return w.stateLocked(), fmt.Errorf("%w: cannot go back from %s", domain.ErrInvalidStep, w.step)
	}
	w.advanceLocked(w.step - 1)
	return w.stateLocked(), nil
}

// UploadMedia sends the files as one batch. Media only changes once the
// backend has accepted them.
func (w *WizardService) UploadMedia(ctx context.Context, kind domain.MediaKind, files []ports.Upload) (domain.WizardState, error) {
	w.mu.Lock()
	if err := w.editableLocked(domain.StepMedia); err != nil {
		defer w.mu.Unlock()
		return w.stateLocked(), err
	}
	if w.draft.ID == "" {
		defer w.mu.Unlock()
		return w.stateLocked(), domain.ErrNoDraftIdentity
	}
	if err := w.idleLocked(); err != nil {
		defer w.mu.Unlock()
		return w.stateLocked(), err
	}
	if err := w.checkUploads(kind, files); err != nil {
		defer w.mu.Unlock()
		return w.stateLocked(), err
	}
	id := w.draft.ID
	w.uploading = true
	w.mu.Unlock()

	paths, err := w.projects.UploadMedia(ctx, id, files)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.uploading = false
	if err != nil {
		return w.stateLocked(), fmt.Errorf("upload media: %w", err)
	}

	switch kind {
	case domain.MediaThumbnail:
		w.draft.Media.Thumbnail = paths[0]
	case domain.MediaScreenshot:
		w.draft.Media.Screenshots = append(w.draft.Media.Screenshots, paths...)
	}
	metrics.MediaUploadedTotal.WithLabelValues(string(kind)).Add(float64(len(files)))
	w.logger.Info().Str("project_id", id).Str("kind", string(kind)).Int("files", len(files)).Msg("media uploaded")
	return w.stateLocked(), nil
}

// OpenConfirmation shows the hand-off overlay, only on a complete review.
func (w *WizardService) OpenConfirmation() (domain.WizardState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.readyLocked(); err != nil {
		return w.stateLocked(), err
	}
	if w.step != domain.StepReview {
		return w.stateLocked(), fmt.Errorf("%w: confirmation is only available on review", domain.ErrInvalidStep)
	}
	if c := Completion(w.draft); !c.Ready() {
		metrics.WizardBlockedTotal.WithLabelValues("incomplete").Inc()
		return w.stateLocked(), fmt.Errorf("%w: %d%% complete", domain.ErrIncomplete, c.Percent)
	}
	w.confirmationOpen = true
	return w.stateLocked(), nil
}

func (w *WizardService) DismissConfirmation() (domain.WizardState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.readyLocked(); err != nil {
		return w.stateLocked(), err
	}
	w.confirmationOpen = false
	return w.stateLocked(), nil
}

// Confirm hands the draft off. Both outcomes persist the latest data first;
// submit then asks the backend to start review. On failure the overlay
// stays open so the user can retry or pick the other outcome.
func (w *WizardService) Confirm(ctx context.Context, outcome domain.ConfirmOutcome) (*ports.ConfirmResult, error) {
	if outcome != domain.OutcomeSubmit && outcome != domain.OutcomeDraft {
		return nil, domain.NewValidationError(map[string]string{"outcome": "outcome must be one of: submit draft"})
	}

	w.mu.Lock()
	if err := w.idleLocked(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if !w.confirmationOpen {
		w.mu.Unlock()
		return nil, fmt.Errorf("%w: confirmation is not open", domain.ErrInvalidStep)
	}
	if w.draft.ID == "" {
		w.mu.Unlock()
		return nil, domain.ErrNoDraftIdentity
	}
	draft := w.draft.Clone()
	w.busy = true
	w.mu.Unlock()

	err := w.projects.Update(ctx, draft.ID, draft)
	if err == nil && outcome == domain.OutcomeSubmit {
		err = w.projects.Submit(ctx, draft.ID)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = false
	if err != nil {
		w.logger.Warn().Err(err).Str("project_id", draft.ID).Str("outcome", string(outcome)).Msg("hand-off failed")
		return nil, fmt.Errorf("%s project: %w", outcome, err)
	}

	w.confirmationOpen = false
	w.closed = true
	metrics.ProjectsHandedOffTotal.WithLabelValues(string(outcome)).Inc()
	w.logger.Info().Str("project_id", draft.ID).Str("outcome", string(outcome)).Msg("project handed off")
	return &ports.ConfirmResult{ProjectID: draft.ID, Outcome: outcome, RedirectTo: ProfileRedirect}, nil
}

// Cancel saves what exists so far, when there is a saved draft to update,
// and closes the wizard. A failed save leaves it open.
func (w *WizardService) Cancel(ctx context.Context) error {
	w.mu.Lock()
	if err := w.idleLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	if w.draft.ID == "" {
		defer w.mu.Unlock()
		w.closed = true
		w.confirmationOpen = false
		return nil
	}
	draft := w.draft.Clone()
	w.busy = true
	w.mu.Unlock()

	err := w.projects.Update(ctx, draft.ID, draft)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = false
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	w.closed = true
	w.confirmationOpen = false
	w.logger.Info().Str("project_id", draft.ID).Msg("wizard cancelled, draft saved")
	return nil
}

// persist creates the project on first call and updates it afterwards.
func (w *WizardService) persist(ctx context.Context, draft domain.DraftProject) (string, error) {
	if draft.ID == "" {
		id, err := w.projects.Create(ctx, draft)
		if err != nil {
			return "", fmt.Errorf("create project: %w", err)
		}
		return id, nil
	}
	if err := w.projects.Update(ctx, draft.ID, draft); err != nil {
		return "", fmt.Errorf("update project: %w", err)
	}
	return draft.ID, nil
}

func (w *WizardService) checkUploads(kind domain.MediaKind, files []ports.Upload) error {
	switch kind {
	case domain.MediaThumbnail:
		if len(files) != 1 {
			return domain.NewValidationError(map[string]string{"files": "thumbnail takes exactly one image"})
		}
	case domain.MediaScreenshot:
		if len(files) == 0 {
			return domain.NewValidationError(map[string]string{"files": "at least one image is required"})
		}
		if len(files) > w.maxFiles {
			return domain.NewValidationError(map[string]string{"files": fmt.Sprintf("at most %d images per upload", w.maxFiles)})
		}
	default:
		return domain.NewValidationError(map[string]string{"kind": "kind must be one of: thumbnail screenshot"})
	}
	return SniffImages(files)
}

func (w *WizardService) readyLocked() error {
	if w.closed {
		return domain.ErrWizardClosed
	}
	if w.busy {
		metrics.WizardBlockedTotal.WithLabelValues("busy").Inc()
		return domain.ErrOperationInProgress
	}
	return nil
}

// idleLocked is readyLocked for actions that persist the draft or upload,
// which must also wait for an upload in flight.
func (w *WizardService) idleLocked() error {
	if err := w.readyLocked(); err != nil {
		return err
	}
	if w.uploading {
		metrics.WizardBlockedTotal.WithLabelValues("busy").Inc()
		return domain.ErrOperationInProgress
	}
	return nil
}

// editableLocked allows form edits only on their own step with the overlay closed.
func (w *WizardService) editableLocked(step domain.Step) error {
	if err := w.readyLocked(); err != nil {
		return err
	}
	if w.step != step || w.confirmationOpen {
		return fmt.Errorf("%w: %s cannot be edited on %s", domain.ErrInvalidStep, step, w.step)
	}
	return nil
}

func (w *WizardService) advanceLocked(to domain.Step) {
	metrics.WizardTransitionsTotal.WithLabelValues(w.step.String(), to.String()).Inc()
	w.step = to
}

func (w *WizardService) stateLocked() domain.WizardState {
	draft := w.draft.Clone()
	return domain.WizardState{
		Step:             w.step,
		StepName:         w.step.String(),
		Draft:            draft,
		Completion:       Completion(draft),
		ConfirmationOpen: w.confirmationOpen,
		Busy:             w.busy || w.uploading,
		Closed:           w.closed,
	}
}

// ParseTags merges a tag list with comma separated text, trimming blanks
// and dropping duplicates while keeping first-seen order.
func ParseTags(list []string, text string) []string {
	raw := append(append([]string{}, list...), strings.Split(text, ",")...)
	tags := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// SessionSource exposes who is signed in.
type SessionSource interface {
	Snapshot() domain.Session
}

// WizardManager owns the console's single active wizard. The wizard belongs
// to the user who opened it and is dropped as soon as the session names
// anyone else, or no one.
type WizardManager struct {
	newWizard func() *WizardService
	sessions  SessionSource
	logger    zerolog.Logger

	mu      sync.Mutex
	current *WizardService
	owner   string
}

var _ ports.WizardManager = (*WizardManager)(nil)

func NewWizardManager(projects ports.ProjectAPI, sessions SessionSource, maxFiles int, logger zerolog.Logger) *WizardManager {
	return &WizardManager{
		newWizard: func() *WizardService { return NewWizardService(projects, maxFiles, logger) },
		sessions:  sessions,
		logger:    logger,
	}
}

// Open discards any previous wizard and starts an empty one for the
// current user.
func (m *WizardManager) Open() ports.Wizard {
	owner := sessionUserID(m.sessions.Snapshot())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.newWizard()
	m.owner = owner
	return m.current
}

// Current returns the active wizard, closed or not, while its owner is
// still the signed-in user.
func (m *WizardManager) Current() (ports.Wizard, error) {
	user := sessionUserID(m.sessions.Snapshot())

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, domain.ErrNoActiveWizard
	}
	if user == "" || user != m.owner {
		m.logger.Info().Str("owner", m.owner).Str("user", user).Msg("session changed, discarding submission wizard")
		m.current = nil
		m.owner = ""
		return nil, domain.ErrNoActiveWizard
	}
	return m.current, nil
}

func sessionUserID(s domain.Session) string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}
