// Package auth contains domain-level types for the TillFlow session.
// It is pure and free of transport/adapter concerns.
package auth

import "strings"

// Role is the application role carried by a TillFlow account.
// Keep string form for easy persistence and JSON round-trips.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMerchant Role = "merchant"
)

// Valid reports whether the role is one the backend issues.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMerchant:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a role string and reports whether it is supported.
func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	if role.Valid() {
		return role, true
	}
	return "", false
}

// User is the identity record the backend returns at login/registration.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FullName         string `json:"fullName"`
	Role             Role   `json:"role"`
	Verified         bool   `json:"verified"`
	ProfileCompleted bool   `json:"profileCompleted"`
}

// Session is the persisted record of the current identity and bearer token.
// User and Token are always set and cleared together; Authenticated is the
// derived view of that pair.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Authenticated reports whether both the user and token are present.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// Valid reports whether a rehydrated record is structurally usable: either
// fully anonymous or fully authenticated. Half-populated records (a token
// without a user, or vice versa) are treated as corrupt.
func (s Session) Valid() bool {
	if s.User == nil && s.Token == "" {
		return true
	}
	return s.Authenticated()
}
