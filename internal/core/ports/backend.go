package ports

import (
	"context"

	"github.com/devnexus/marketplace-console/internal/core/domain"
)

// AuthResult is the normalised login/signup response. AccessToken is empty
// when the backend defers the session until the email is verified.
type AuthResult struct {
	AccessToken string
	User        *domain.User
}

// SignupInput carries the account creation form.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Upload is one file picked by the user, already read into memory.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProfileUpdate holds the editable profile fields. An empty Name or a nil
// Interests leaves that field untouched; an empty non-nil Interests clears it.
type ProfileUpdate struct {
	Name      string
	Interests []string
}

// DiscoverQuery filters the discover grid.
type DiscoverQuery struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

// AuthAPI is the backend's session lifecycle.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*domain.User, error)
}

// ProfileAPI mutates the current account.
type ProfileAPI interface {
	UpdateProfile(ctx context.Context, in ProfileUpdate) error
	ChangePassword(ctx context.Context, current, next string) error
	UploadAvatar(ctx context.Context, file Upload) error
	DeleteAvatar(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

// ProjectAPI persists and reads projects.
type ProjectAPI interface {
	// Create stores a new draft and returns its backend id.
	Create(ctx context.Context, draft domain.DraftProject) (string, error)
	Update(ctx context.Context, id string, draft domain.DraftProject) error
	// UploadMedia sends files as one multipart batch and returns the stored paths.
	UploadMedia(ctx context.Context, id string, files []Upload) ([]string, error)
	Submit(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Project, error)
	ListOwnByStatus(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error)
}

// CatalogAPI serves the public listing views.
type CatalogAPI interface {
	Marketplace(ctx context.Context, page, limit int) (*domain.Page[domain.MarketplaceItem], error)
	Discover(ctx context.Context, q DiscoverQuery) (*domain.Page[domain.Project], error)
	Suggestions(ctx context.Context) ([]domain.Project, error)
}
