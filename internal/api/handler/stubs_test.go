package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
)

// newTestContext builds an echo context with the console's validator installed.
func newTestContext(method, target string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubSession struct {
	snapshot  domain.Session
	loginFn   func(ctx context.Context, email, password string) (domain.Session, error)
	signupFn  func(ctx context.Context, in ports.SignupInput) (*ports.SignupResult, error)
	refreshFn func(ctx context.Context) (domain.Session, error)

	logoutCalls int
}

func (s *stubSession) Initialize(context.Context) {}

func (s *stubSession) Login(ctx context.Context, email, password string) (domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSession) Signup(ctx context.Context, in ports.SignupInput) (*ports.SignupResult, error) {
	return s.signupFn(ctx, in)
}

func (s *stubSession) Logout(context.Context) {
	s.logoutCalls++
	s.snapshot = domain.Session{}
}

func (s *stubSession) Refresh(ctx context.Context) (domain.Session, error) {
	return s.refreshFn(ctx)
}

func (s *stubSession) Snapshot() domain.Session { return s.snapshot }

func (s *stubSession) Subscribe() (<-chan domain.Session, func()) {
	ch := make(chan domain.Session, 1)
	ch <- s.snapshot
	return ch, func() {}
}

type stubWizard struct {
	state domain.WizardState
	err   error

	basicInfo ports.BasicInfoInput
	uploads   []ports.Upload
	kind      domain.MediaKind
	outcome   domain.ConfirmOutcome
	cancelled bool
}

func (w *stubWizard) State() domain.WizardState { return w.state }

func (w *stubWizard) SetBasicInfo(in ports.BasicInfoInput) (domain.WizardState, error) {
	w.basicInfo = in
	return w.state, w.err
}

func (w *stubWizard) SetPlatform(ports.PlatformInput) (domain.WizardState, error) {
	return w.state, w.err
}

func (w *stubWizard) SetMarketplace(ports.MarketplaceInput) (domain.WizardState, error) {
	return w.state, w.err
}

func (w *stubWizard) Next(context.Context) (domain.WizardState, error) { return w.state, w.err }

func (w *stubWizard) Back() (domain.WizardState, error) { return w.state, w.err }

func (w *stubWizard) UploadMedia(_ context.Context, kind domain.MediaKind, files []ports.Upload) (domain.WizardState, error) {
	w.kind = kind
	w.uploads = files
	return w.state, w.err
}

func (w *stubWizard) OpenConfirmation() (domain.WizardState, error) { return w.state, w.err }

func (w *stubWizard) DismissConfirmation() (domain.WizardState, error) { return w.state, w.err }

func (w *stubWizard) Confirm(_ context.Context, outcome domain.ConfirmOutcome) (*ports.ConfirmResult, error) {
	w.outcome = outcome
	if w.err != nil {
		return nil, w.err
	}
	return &ports.ConfirmResult{ProjectID: w.state.Draft.ID, Outcome: outcome, RedirectTo: "/profile"}, nil
}

func (w *stubWizard) Cancel(context.Context) error {
	w.cancelled = true
	return w.err
}

type stubWizards struct {
	current *stubWizard
	opened  int
}

func (m *stubWizards) Open() ports.Wizard {
	m.opened++
	m.current = &stubWizard{state: domain.WizardState{Step: domain.StepBasicInfo, StepName: domain.StepBasicInfo.String()}}
	return m.current
}

func (m *stubWizards) Current() (ports.Wizard, error) {
	if m.current == nil {
		return nil, domain.ErrNoActiveWizard
	}
	return m.current, nil
}

type stubProfile struct {
	updateFn    func(ctx context.Context, in ports.ProfileUpdate) (domain.Session, error)
	interestsFn func(ctx context.Context, interests []string) (domain.Session, error)
	passwordFn  func(ctx context.Context, current, next, confirm string) error
	avatarFn    func(ctx context.Context, file ports.Upload) (domain.Session, error)
	projectsFn  func(ctx context.Context, status string) ([]domain.Project, error)

	deleted bool
}

func (p *stubProfile) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) (domain.Session, error) {
	return p.updateFn(ctx, in)
}

func (p *stubProfile) UpdateInterests(ctx context.Context, interests []string) (domain.Session, error) {
	return p.interestsFn(ctx, interests)
}

func (p *stubProfile) ChangePassword(ctx context.Context, current, next, confirm string) error {
	return p.passwordFn(ctx, current, next, confirm)
}

func (p *stubProfile) UploadAvatar(ctx context.Context, file ports.Upload) (domain.Session, error) {
	return p.avatarFn(ctx, file)
}

func (p *stubProfile) DeleteAvatar(context.Context) (domain.Session, error) {
	return domain.Session{User: &domain.User{ID: "u1"}}, nil
}

func (p *stubProfile) DeleteAccount(context.Context) error {
	p.deleted = true
	return nil
}

func (p *stubProfile) OwnProjects(ctx context.Context, status string) ([]domain.Project, error) {
	return p.projectsFn(ctx, status)
}

type stubCatalog struct {
	marketplaceFn func(ctx context.Context, page, limit int) (*domain.Page[domain.MarketplaceItem], error)
	discoverFn    func(ctx context.Context, q ports.DiscoverQuery) (*domain.Page[domain.Project], error)
	projectFn     func(ctx context.Context, id string) (*domain.Project, error)
	contactFn     func(ctx context.Context, id string) (*domain.ContactLinks, error)
}

func (s *stubCatalog) Marketplace(ctx context.Context, page, limit int) (*domain.Page[domain.MarketplaceItem], error) {
	return s.marketplaceFn(ctx, page, limit)
}

func (s *stubCatalog) Discover(ctx context.Context, q ports.DiscoverQuery) (*domain.Page[domain.Project], error) {
	return s.discoverFn(ctx, q)
}

func (s *stubCatalog) Suggestions(context.Context) ([]domain.Project, error) {
	return []domain.Project{}, nil
}

func (s *stubCatalog) Project(ctx context.Context, id string) (*domain.Project, error) {
	return s.projectFn(ctx, id)
}

func (s *stubCatalog) ContactLinks(ctx context.Context, id string) (*domain.ContactLinks, error) {
	return s.contactFn(ctx, id)
}

var (
	_ ports.SessionService = (*stubSession)(nil)
	_ ports.WizardManager  = (*stubWizards)(nil)
	_ ports.ProfileService = (*stubProfile)(nil)
	_ ports.CatalogService = (*stubCatalog)(nil)
)

var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
}
