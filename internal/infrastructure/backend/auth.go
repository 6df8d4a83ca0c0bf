package backend

import (
	"context"
	"net/http"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
)

const (
	pathLogin   = "/api/auth/login"
	pathSignup  = "/api/auth/signup"
	pathLogout  = "/api/auth/logout"
	pathProfile = "/api/users/profile/me"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login posts credentials. The token is returned, not stored: persisting it
// is the session store's job.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	var env envelope
	if err := c.sendJSON(ctx, "auth_login", http.MethodPost, pathLogin, loginRequest{Email: email, Password: password}, &env); err != nil {
		return nil, err
	}
	return &ports.AuthResult{AccessToken: env.AccessToken, User: env.user()}, nil
}

func (c *Client) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleBuyer
	}
	body := signupRequest{Name: in.Name, Email: in.Email, Password: in.Password, Role: string(role)}

	var env envelope
	if err := c.sendJSON(ctx, "auth_signup", http.MethodPost, pathSignup, body, &env); err != nil {
		return nil, err
	}
	res := &ports.AuthResult{AccessToken: env.AccessToken}
	if res.AccessToken != "" {
		res.User = env.user()
	}
	return res, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.sendJSON(ctx, "auth_logout", http.MethodPost, pathLogout, nil, nil)
}

// Me fetches the current identity.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var env envelope
	if err := c.getJSON(ctx, "profile_me", pathProfile, nil, &env); err != nil {
		return nil, err
	}
	u := env.user()
	if u == nil {
		return nil, &domain.BackendError{Status: http.StatusOK, Message: "malformed response: profile without identity"}
	}
	return u, nil
}
