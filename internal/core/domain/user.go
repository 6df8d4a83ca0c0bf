package domain

import "strings"

// Role is the marketplace role attached to an account.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
)

// Roles lists every role the backend may assign.
var Roles = []Role{RoleBuyer, RoleSeller, RoleAdmin, RoleUser}

// ParseRole normalises s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// User is the identity returned by the backend profile endpoint.
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Avatar    string   `json:"avatar,omitempty"`
	Verified  bool     `json:"verified"`
	Role      Role     `json:"role"`
	Interests []string `json:"interests"`
}

// Clone returns a deep copy so snapshots never alias store state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Interests != nil {
		c.Interests = append([]string(nil), u.Interests...)
	}
	return &c
}

// Session is a read-only snapshot of who is logged in.
type Session struct {
	User      *User `json:"user"`
	IsLoading bool  `json:"isLoading"`
}

// IsAuthenticated is derived from the presence of an identity.
func (s Session) IsAuthenticated() bool {
	return s.User != nil
}
