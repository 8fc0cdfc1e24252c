//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// TokenType distinguishes the kinds of platform tokens an admin can mint.
type TokenType string

const (
	TokenTypePayment     TokenType = "payment"
	TokenTypeAPI         TokenType = "api"
	TokenTypeAccess      TokenType = "access"
	TokenTypeIntegration TokenType = "integration"
)

// Valid reports whether the token type is supported.
func (t TokenType) Valid() bool {
	switch t {
	case TokenTypePayment, TokenTypeAPI, TokenTypeAccess, TokenTypeIntegration:
		return true
	default:
		return false
	}
}

// SecretPrefix returns the prefix baked into minted secrets of this type.
func (t TokenType) SecretPrefix() string {
	switch t {
	case TokenTypePayment:
		return "tk_live"
	case TokenTypeAPI:
		return "tk_api"
	case TokenTypeAccess:
		return "tk_acc"
	default:
		return "tk_int"
	}
}

// ParseTokenType normalizes a type string and reports whether it is supported.
func ParseTokenType(value string) (TokenType, bool) {
	tt := TokenType(strings.ToLower(strings.TrimSpace(value)))
	if tt.Valid() {
		return tt, true
	}
	return "", false
}

// TokenStatus is the lifecycle of an issued token.
type TokenStatus string

const (
	TokenStatusActive   TokenStatus = "active"
	TokenStatusInactive TokenStatus = "inactive"
	TokenStatusExpired  TokenStatus = "expired"
)

// Valid reports whether the status is supported.
func (s TokenStatus) Valid() bool {
	switch s {
	case TokenStatusActive, TokenStatusInactive, TokenStatusExpired:
		return true
	default:
		return false
	}
}

// ParseTokenStatus normalizes a status string and reports whether it is supported.
func ParseTokenStatus(value string) (TokenStatus, bool) {
	status := TokenStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// APIToken is an issued platform credential shown on the tokenization page.
// Secret is the full credential; listings expose only a masked form.
type APIToken struct {
	ID          string      `json:"id"                    db:"id"`
	Name        string      `json:"name"                  db:"name"`
	Secret      string      `json:"token"                 db:"secret"`
	Type        TokenType   `json:"type"                  db:"type"`
	Status      TokenStatus `json:"status"                db:"status"`
	Description string      `json:"description,omitempty" db:"description"`
	CreatedBy   string      `json:"createdBy"             db:"created_by"`
	UsageCount  int64       `json:"usageCount"            db:"usage_count"`
	LastUsed    *time.Time  `json:"lastUsed,omitempty"    db:"last_used"`
	ExpiresAt   time.Time   `json:"expiresAt"             db:"expires_at"`
	CreatedAt   time.Time   `json:"createdAt"             db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt"             db:"updated_at"`
}

// EffectiveStatus accounts for wall-clock expiry on top of the stored status.
func (t *APIToken) EffectiveStatus(now time.Time) TokenStatus {
	if t.Status == TokenStatusActive && now.After(t.ExpiresAt) {
		return TokenStatusExpired
	}
	return t.Status
}

// MaskedSecret keeps the prefix and last four characters visible.
func (t *APIToken) MaskedSecret() string {
	const visibleTail = 4
	idx := strings.LastIndex(t.Secret, "_")
	if idx < 0 || len(t.Secret)-idx-1 <= visibleTail {
		return t.Secret
	}
	prefix := t.Secret[:idx+1]
	tail := t.Secret[len(t.Secret)-visibleTail:]
	return prefix + strings.Repeat("*", len(t.Secret)-len(prefix)-visibleTail) + tail
}

// TokenListOptions controls paging and filtering for listing tokens.
type TokenListOptions struct {
	Limit  int
	Offset int
	Q      *string // substring match on name (ILIKE)
	Type   *TokenType
	Status *TokenStatus
	Sort   string // allowed: "created_at", "name", "expires_at"
	Dir    string
}

// CreateTokenRequest represents parameters to mint a token. The secret itself
// is generated server-side; callers never supply it.
type CreateTokenRequest struct {
	Name        string    `json:"name"`
	Type        TokenType `json:"type"`
	Description string    `json:"description,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UpdateTokenRequest represents parameters to update a token's metadata.
type UpdateTokenRequest struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Status      *TokenStatus `json:"status,omitempty"`
	ExpiresAt   *time.Time   `json:"expiresAt,omitempty"`
}

// Validate validates CreateTokenRequest.
func (r *CreateTokenRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	if !r.Type.Valid() {
		return errors.New("type must be one of: payment, api, access, integration")
	}
	if r.ExpiresAt.IsZero() {
		return errors.New("expiresAt is required")
	}
	return nil
}

// Validate validates UpdateTokenRequest.
func (r *UpdateTokenRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("status must be one of: active, inactive, expired")
	}
	return nil
}
