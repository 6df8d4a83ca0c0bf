package service

import (
	"testing"

	"github.com/devnexus/marketplace-console/internal/core/domain"
)

func TestGuard(t *testing.T) {
	seller := &domain.User{ID: "u1", Role: domain.RoleSeller}
	buyer := &domain.User{ID: "u2", Role: domain.RoleBuyer}

	cases := []struct {
		name    string
		session domain.Session
		allowed []domain.Role
		want    domain.GuardOutcome
		from    string
	}{
		{"loading wins over everything", domain.Session{User: seller, IsLoading: true}, SubmitRoles, domain.GuardLoading, ""},
		{"anonymous goes to entry", domain.Session{}, SubmitRoles, domain.GuardRedirectToEntry, "/submit"},
		{"anonymous on any-role route", domain.Session{}, AnyRole, domain.GuardRedirectToEntry, "/submit"},
		{"wrong role goes away", domain.Session{User: buyer}, SubmitRoles, domain.GuardRedirectAway, ""},
		{"seller allowed", domain.Session{User: seller}, SubmitRoles, domain.GuardAllow, ""},
		{"any role admits buyer", domain.Session{User: buyer}, AnyRole, domain.GuardAllow, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Guard(tc.session, tc.allowed, "/submit")
			if got.Outcome != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got.Outcome)
			}
			if got.From != tc.from {
				t.Fatalf("expected from %q, got %q", tc.from, got.From)
			}
		})
	}
}
