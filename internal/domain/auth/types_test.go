package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Role
		ok    bool
	}{
		{name: "admin", input: "admin", want: RoleAdmin, ok: true},
		{name: "merchant", input: "merchant", want: RoleMerchant, ok: true},
		{name: "mixed case with spaces", input: "  Admin ", want: RoleAdmin, ok: true},
		{name: "unknown", input: "superuser", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRole(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSession_Authenticated(t *testing.T) {
	user := &User{ID: "u1", Email: "a@b.com", FullName: "A B", Role: RoleMerchant}

	assert.False(t, Session{}.Authenticated())
	assert.False(t, Session{Token: "tok-abc"}.Authenticated())
	assert.False(t, Session{User: user}.Authenticated())
	assert.True(t, Session{User: user, Token: "tok-abc"}.Authenticated())
}

func TestSession_Valid(t *testing.T) {
	user := &User{ID: "u1"}

	assert.True(t, Session{}.Valid(), "anonymous record is valid")
	assert.True(t, Session{User: user, Token: "tok"}.Valid(), "full record is valid")
	assert.False(t, Session{Token: "tok"}.Valid(), "token without user is corrupt")
	assert.False(t, Session{User: user}.Valid(), "user without token is corrupt")
}
