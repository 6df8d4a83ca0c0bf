package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devnexus/marketplace-console/internal/core/ports"
)

const avatarField = "avatar"

type ProfileHandler struct {
	profile ports.ProfileService
	limits  UploadLimits
}

func NewProfileHandler(profile ports.ProfileService, limits UploadLimits) *ProfileHandler {
	limits.MaxFiles = 1
	return &ProfileHandler{profile: profile, limits: limits}
}

type updateProfileRequest struct {
	Name      string    `json:"name"`
	Interests *[]string `json:"interests"`
}

type interestsRequest struct {
	Interests []string `json:"interests"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Get returns the signed-in user.
//
// @Summary      Current profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.User
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Projects lists the user's projects in one status tab.
//
// @Summary      Own projects by status
// @Tags         profile
// @Produce      json
// @Param        status  path      string  true  "draft, pending, approved, rejected or marketplace"
// @Success      200     {array}   domain.Project
// @Failure      422     {object}  map[string]string
// @Failure      502     {object}  map[string]string
// @Router       /api/profile/projects/{status} [get]
func (h *ProfileHandler) Projects(c echo.Context) error {
	projects, err := h.profile.OwnProjects(c.Request().Context(), c.Param("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Update changes the display name and, when given, the interests.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Name and optional interests"
// @Success      200   {object}  sessionResponse
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in := ports.ProfileUpdate{Name: req.Name}
	if req.Interests != nil {
		in.Interests = *req.Interests
		if in.Interests == nil {
			in.Interests = []string{}
		}
	}
	s, err := h.profile.UpdateProfile(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(s))
}

// UpdateInterests replaces the interest list.
//
// @Summary      Update interests
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      interestsRequest  true  "Interests"
// @Success      200   {object}  sessionResponse
// @Failure      502   {object}  map[string]string
// @Router       /api/profile/interests [put]
func (h *ProfileHandler) UpdateInterests(c echo.Context) error {
	var req interestsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	s, err := h.profile.UpdateInterests(c.Request().Context(), req.Interests)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(s))
}

// ChangePassword sets a new password.
//
// @Summary      Change password
// @Tags         profile
// @Accept       json
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/profile/password [put]
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.profile.ChangePassword(c.Request().Context(), req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadAvatar replaces the profile picture.
//
// @Summary      Upload avatar
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        avatar  formData  file  true  "Image file"
// @Success      200     {object}  sessionResponse
// @Failure      422     {object}  map[string]string
// @Failure      502     {object}  map[string]string
// @Router       /api/profile/avatar [post]
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	files, err := readUploads(c, avatarField, h.limits)
	if err != nil {
		return err
	}
	s, err := h.profile.UploadAvatar(c.Request().Context(), files[0])
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(s))
}

// DeleteAvatar removes the profile picture.
//
// @Summary      Delete avatar
// @Tags         profile
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      502  {object}  map[string]string
// @Router       /api/profile/avatar [delete]
func (h *ProfileHandler) DeleteAvatar(c echo.Context) error {
	s, err := h.profile.DeleteAvatar(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(s))
}

// Delete removes the account and logs out.
//
// @Summary      Delete account
// @Tags         profile
// @Success      204
// @Failure      502  {object}  map[string]string
// @Router       /api/profile [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	if err := h.profile.DeleteAccount(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
