package service

import (
	"context"
	"sync"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
)

type stubAuthAPI struct {
	loginFn  func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	signupFn func(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error)
	logoutFn func(ctx context.Context) error
	meFn     func(ctx context.Context) (*domain.User, error)

	meCalls int
}

func (s *stubAuthAPI) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthAPI) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthAPI) Logout(ctx context.Context) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx)
}

func (s *stubAuthAPI) Me(ctx context.Context) (*domain.User, error) {
	s.meCalls++
	return s.meFn(ctx)
}

type stubTokens struct {
	mu    sync.Mutex
	token string
}

func (s *stubTokens) Load(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *stubTokens) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *stubTokens) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *stubTokens) Ping(context.Context) error { return nil }

func (s *stubTokens) get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

type stubProjectAPI struct {
	createFn func(ctx context.Context, draft domain.DraftProject) (string, error)
	updateFn func(ctx context.Context, id string, draft domain.DraftProject) error
	uploadFn func(ctx context.Context, id string, files []ports.Upload) ([]string, error)
	submitFn func(ctx context.Context, id string) error
	getFn    func(ctx context.Context, id string) (*domain.Project, error)
	listFn   func(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error)

	creates   int
	updates   []string
	submitted []string
}

func (s *stubProjectAPI) Create(ctx context.Context, draft domain.DraftProject) (string, error) {
	s.creates++
	return s.createFn(ctx, draft)
}

func (s *stubProjectAPI) Update(ctx context.Context, id string, draft domain.DraftProject) error {
	s.updates = append(s.updates, id)
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, id, draft)
}

func (s *stubProjectAPI) UploadMedia(ctx context.Context, id string, files []ports.Upload) ([]string, error) {
	return s.uploadFn(ctx, id, files)
}

func (s *stubProjectAPI) Submit(ctx context.Context, id string) error {
	s.submitted = append(s.submitted, id)
	if s.submitFn == nil {
		return nil
	}
	return s.submitFn(ctx, id)
}

func (s *stubProjectAPI) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.getFn(ctx, id)
}

func (s *stubProjectAPI) ListOwnByStatus(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error) {
	return s.listFn(ctx, status)
}

type stubProfileAPI struct {
	updateFn   func(ctx context.Context, in ports.ProfileUpdate) error
	passwordFn func(ctx context.Context, current, next string) error
	avatarFn   func(ctx context.Context, file ports.Upload) error

	avatarDeleted  bool
	accountDeleted bool
}

func (s *stubProfileAPI) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) error {
	return s.updateFn(ctx, in)
}

func (s *stubProfileAPI) ChangePassword(ctx context.Context, current, next string) error {
	return s.passwordFn(ctx, current, next)
}

func (s *stubProfileAPI) UploadAvatar(ctx context.Context, file ports.Upload) error {
	return s.avatarFn(ctx, file)
}

func (s *stubProfileAPI) DeleteAvatar(context.Context) error {
	s.avatarDeleted = true
	return nil
}

func (s *stubProfileAPI) DeleteAccount(context.Context) error {
	s.accountDeleted = true
	return nil
}

type stubCatalogAPI struct {
	marketplaceFn func(ctx context.Context, page, limit int) (*domain.Page[domain.MarketplaceItem], error)
	discoverFn    func(ctx context.Context, q ports.DiscoverQuery) (*domain.Page[domain.Project], error)
}

func (s *stubCatalogAPI) Marketplace(ctx context.Context, page, limit int) (*domain.Page[domain.MarketplaceItem], error) {
	return s.marketplaceFn(ctx, page, limit)
}

func (s *stubCatalogAPI) Discover(ctx context.Context, q ports.DiscoverQuery) (*domain.Page[domain.Project], error) {
	return s.discoverFn(ctx, q)
}

func (s *stubCatalogAPI) Suggestions(context.Context) ([]domain.Project, error) {
	return []domain.Project{}, nil
}

// pngBytes is the smallest prefix mimetype recognises as image/png.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
