//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenType_SecretPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tk_live", TokenTypePayment.SecretPrefix())
	assert.Equal(t, "tk_api", TokenTypeAPI.SecretPrefix())
	assert.Equal(t, "tk_acc", TokenTypeAccess.SecretPrefix())
	assert.Equal(t, "tk_int", TokenTypeIntegration.SecretPrefix())
}

func TestAPIToken_MaskedSecret(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		secret string
		want   string
	}{
		{
			name:   "live secret keeps prefix and tail",
			secret: "tk_live_a1b2c3d4e5f6",
			want:   "tk_live_********e5f6",
		},
		{
			name:   "api secret",
			secret: "tk_api_0011223344",
			want:   "tk_api_******3344",
		},
		{
			name:   "short secret returned unchanged",
			secret: "tk_api_1234",
			want:   "tk_api_1234",
		},
		{
			name:   "secret without separator returned unchanged",
			secret: "opaque",
			want:   "opaque",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tok := APIToken{Secret: tt.secret}
			assert.Equal(t, tt.want, tok.MaskedSecret())
		})
	}
}

func TestAPIToken_EffectiveStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status TokenStatus
		expiry time.Time
		want   TokenStatus
	}{
		{
			name:   "active before expiry stays active",
			status: TokenStatusActive,
			expiry: now.Add(time.Hour),
			want:   TokenStatusActive,
		},
		{
			name:   "active past expiry reads as expired",
			status: TokenStatusActive,
			expiry: now.Add(-time.Hour),
			want:   TokenStatusExpired,
		},
		{
			name:   "inactive past expiry stays inactive",
			status: TokenStatusInactive,
			expiry: now.Add(-time.Hour),
			want:   TokenStatusInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tok := APIToken{Status: tt.status, ExpiresAt: tt.expiry}
			assert.Equal(t, tt.want, tok.EffectiveStatus(now))
		})
	}
}

func TestCreateTokenRequest_Validate(t *testing.T) {
	t.Parallel()

	expiry := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     CreateTokenRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			req: CreateTokenRequest{
				Name:      "Checkout Production",
				Type:      TokenTypePayment,
				ExpiresAt: expiry,
			},
			wantErr: false,
		},
		{
			name: "empty name",
			req: CreateTokenRequest{
				Name:      "   ",
				Type:      TokenTypePayment,
				ExpiresAt: expiry,
			},
			wantErr: true,
			errMsg:  "name is required and cannot be empty",
		},
		{
			name: "unknown type",
			req: CreateTokenRequest{
				Name:      "Checkout Production",
				Type:      TokenType("webhook"),
				ExpiresAt: expiry,
			},
			wantErr: true,
			errMsg:  "type must be one of",
		},
		{
			name: "missing expiry",
			req: CreateTokenRequest{
				Name: "Checkout Production",
				Type: TokenTypeAPI,
			},
			wantErr: true,
			errMsg:  "expiresAt is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
