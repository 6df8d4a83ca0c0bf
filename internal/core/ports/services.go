package ports

import (
	"context"

	"github.com/devnexus/marketplace-console/internal/core/domain"
)

// SignupResult tells the caller whether to show the "check your email" view.
type SignupResult struct {
	Session              domain.Session
	VerificationRequired bool
}

// SessionService is the single writer of the session and the stored token.
type SessionService interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Signup(ctx context.Context, in SignupInput) (*SignupResult, error)
	Logout(ctx context.Context)
	Refresh(ctx context.Context) (domain.Session, error)
	Snapshot() domain.Session
	// Subscribe delivers the latest snapshot after every change until the
	// returned cancel func is called.
	Subscribe() (<-chan domain.Session, func())
}

// BasicInfoInput is the step 1 form. Tags may come as a list or as the raw
// comma separated text field; both are merged.
type BasicInfoInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	TagsText    string   `json:"tagsText"`
}

// PlatformInput is the step 2 form.
type PlatformInput struct {
	Type      string `json:"type"`
	Website   string `json:"website"`
	AppStore  string `json:"appStore"`
	PlayStore string `json:"playStore"`
}

// MarketplaceInput is the step 4 form.
type MarketplaceInput struct {
	IsForSale    bool    `json:"isForSale"`
	Price        float64 `json:"price"`
	ContactEmail string  `json:"contactEmail"`
	WhatsApp     string  `json:"whatsapp"`
}

// ConfirmResult is returned once the wizard has handed the draft off.
type ConfirmResult struct {
	ProjectID  string                `json:"projectId"`
	Outcome    domain.ConfirmOutcome `json:"outcome"`
	RedirectTo string                `json:"redirectTo"`
}

// Wizard drives one submission from an empty draft to review.
type Wizard interface {
	State() domain.WizardState
	SetBasicInfo(in BasicInfoInput) (domain.WizardState, error)
	SetPlatform(in PlatformInput) (domain.WizardState, error)
	SetMarketplace(in MarketplaceInput) (domain.WizardState, error)
	Next(ctx context.Context) (domain.WizardState, error)
	Back() (domain.WizardState, error)
	UploadMedia(ctx context.Context, kind domain.MediaKind, files []Upload) (domain.WizardState, error)
	OpenConfirmation() (domain.WizardState, error)
	DismissConfirmation() (domain.WizardState, error)
	Confirm(ctx context.Context, outcome domain.ConfirmOutcome) (*ConfirmResult, error)
	Cancel(ctx context.Context) error
}

// WizardManager owns the console's single active wizard.
type WizardManager interface {
	Open() Wizard
	Current() (Wizard, error)
}

// ProfileService wraps account mutations and keeps the session fresh.
type ProfileService interface {
	UpdateProfile(ctx context.Context, in ProfileUpdate) (domain.Session, error)
	UpdateInterests(ctx context.Context, interests []string) (domain.Session, error)
	ChangePassword(ctx context.Context, current, next, confirm string) error
	UploadAvatar(ctx context.Context, file Upload) (domain.Session, error)
	DeleteAvatar(ctx context.Context) (domain.Session, error)
	DeleteAccount(ctx context.Context) error
	OwnProjects(ctx context.Context, status string) ([]domain.Project, error)
}

// CatalogService serves the read-only listing views.
type CatalogService interface {
	Marketplace(ctx context.Context, page, limit int) (*domain.Page[domain.MarketplaceItem], error)
	Discover(ctx context.Context, q DiscoverQuery) (*domain.Page[domain.Project], error)
	Suggestions(ctx context.Context) ([]domain.Project, error)
	Project(ctx context.Context, id string) (*domain.Project, error)
	ContactLinks(ctx context.Context, id string) (*domain.ContactLinks, error)
}
