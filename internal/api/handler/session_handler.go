package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
)

type SessionHandler struct {
	session ports.SessionService
}

func NewSessionHandler(session ports.SessionService) *SessionHandler {
	return &SessionHandler{session: session}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=buyer seller"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	Loading       bool         `json:"loading"`
	User          *domain.User `json:"user"`
}

type signupResponse struct {
	Status  string          `json:"status"`
	Session sessionResponse `json:"session"`
}

func newSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{Authenticated: s.IsAuthenticated(), Loading: s.IsLoading, User: s.User}
}

// Get returns the current session.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, newSessionResponse(h.session.Snapshot()))
}

// Login authenticates against the backend and stores the token.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string  "email verification required"
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	s, err := h.session.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(s))
}

// Signup creates an account. When the backend holds the session back until
// the email is verified the response status is "verification_sent".
//
// @Summary      Sign up
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  signupResponse
// @Success      202   {object}  signupResponse
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/session/signup [post]
func (h *SessionHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		role = domain.RoleBuyer
	}
	res, err := h.session.Signup(c.Request().Context(), ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return err
	}

	if res.VerificationRequired {
		return c.JSON(http.StatusAccepted, signupResponse{Status: "verification_sent", Session: newSessionResponse(res.Session)})
	}
	return c.JSON(http.StatusCreated, signupResponse{Status: "signed_up", Session: newSessionResponse(res.Session)})
}

// Logout clears the session. It never fails.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.session.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, newSessionResponse(h.session.Snapshot()))
}

// Refresh re-reads the profile from the backend.
//
// @Summary      Refresh session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/session/refresh [post]
func (h *SessionHandler) Refresh(c echo.Context) error {
	s, err := h.session.Refresh(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(s))
}
