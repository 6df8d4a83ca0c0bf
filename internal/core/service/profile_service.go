package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
	"github.com/devnexus/marketplace-console/internal/pkg/validation"
)

type passwordRules struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=NewPassword"`
}

type profileRules struct {
	Name string `json:"name" validate:"required,max=80"`
}

// ProfileService wraps account mutations. Every successful change is
// followed by a session refresh so the identity shown stays current.
type ProfileService struct {
	profile  ports.ProfileAPI
	projects ports.ProjectAPI
	session  ports.SessionService
	validate *validator.Validate
	logger   zerolog.Logger
}

var _ ports.ProfileService = (*ProfileService)(nil)

func NewProfileService(profile ports.ProfileAPI, projects ports.ProjectAPI, session ports.SessionService, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		profile:  profile,
		projects: projects,
		session:  session,
		validate: validation.New(),
		logger:   logger,
	}
}

func (s *ProfileService) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) (domain.Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(s.validate, profileRules{Name: in.Name}); err != nil {
		return s.session.Snapshot(), err
	}
	if in.Interests != nil {
		in.Interests = ParseTags(in.Interests, "")
	}
	if err := s.profile.UpdateProfile(ctx, in); err != nil {
		return s.session.Snapshot(), fmt.Errorf("update profile: %w", err)
	}
	return s.refresh(ctx)
}

// UpdateInterests replaces the interest list; an empty list clears it.
func (s *ProfileService) UpdateInterests(ctx context.Context, interests []string) (domain.Session, error) {
	in := ports.ProfileUpdate{Interests: ParseTags(interests, "")}
	if err := s.profile.UpdateProfile(ctx, in); err != nil {
		return s.session.Snapshot(), fmt.Errorf("update interests: %w", err)
	}
	return s.refresh(ctx)
}

func (s *ProfileService) ChangePassword(ctx context.Context, current, next, confirm string) error {
	rules := passwordRules{CurrentPassword: current, NewPassword: next, ConfirmPassword: confirm}
	if err := validation.Struct(s.validate, rules); err != nil {
		return err
	}
	if err := s.profile.ChangePassword(ctx, current, next); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	s.logger.Info().Msg("password changed")
	if _, err := s.session.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("session refresh after password change failed")
	}
	return nil
}

func (s *ProfileService) UploadAvatar(ctx context.Context, file ports.Upload) (domain.Session, error) {
	files := []ports.Upload{file}
	if err := SniffImages(files); err != nil {
		return s.session.Snapshot(), err
	}
	if err := s.profile.UploadAvatar(ctx, files[0]); err != nil {
		return s.session.Snapshot(), fmt.Errorf("upload avatar: %w", err)
	}
	return s.refresh(ctx)
}

func (s *ProfileService) DeleteAvatar(ctx context.Context) (domain.Session, error) {
	if err := s.profile.DeleteAvatar(ctx); err != nil {
		return s.session.Snapshot(), fmt.Errorf("delete avatar: %w", err)
	}
	return s.refresh(ctx)
}

// DeleteAccount removes the account and then logs out locally.
func (s *ProfileService) DeleteAccount(ctx context.Context) error {
	if err := s.profile.DeleteAccount(ctx); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.logger.Info().Msg("account deleted")
	s.session.Logout(ctx)
	return nil
}

// OwnProjects lists the current user's projects for one status tab.
func (s *ProfileService) OwnProjects(ctx context.Context, status string) ([]domain.Project, error) {
	st, err := domain.ParseProjectStatus(status)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.ListOwnByStatus(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("list %s projects: %w", st, err)
	}
	return projects, nil
}

func (s *ProfileService) refresh(ctx context.Context) (domain.Session, error) {
	sess, err := s.session.Refresh(ctx)
	if err != nil {
		return sess, fmt.Errorf("refresh session: %w", err)
	}
	return sess, nil
}
