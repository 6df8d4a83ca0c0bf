package service

import (
	"slices"

	"github.com/devnexus/marketplace-console/internal/core/domain"
)

// Role sets for guarded routes. A nil set admits any authenticated user.
var (
	SubmitRoles = []domain.Role{domain.RoleSeller, domain.RoleAdmin}
	AnyRole     []domain.Role
)

// Guard decides what a protected route does for the given session. It has
// no side effects; rendering the decision is the caller's job.
func Guard(s domain.Session, allowed []domain.Role, location string) domain.GuardDecision {
	switch {
	case s.IsLoading:
		return domain.GuardDecision{Outcome: domain.GuardLoading}
	case !s.IsAuthenticated():
		return domain.GuardDecision{Outcome: domain.GuardRedirectToEntry, From: location}
	case len(allowed) > 0 && !slices.Contains(allowed, s.User.Role):
		return domain.GuardDecision{Outcome: domain.GuardRedirectAway}
	default:
		return domain.GuardDecision{Outcome: domain.GuardAllow}
	}
}
