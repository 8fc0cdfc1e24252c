package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tillflow/admin-api/internal/domain/model"
	apperrors "github.com/tillflow/admin-api/internal/errors"
	"github.com/tillflow/admin-api/internal/ports"
)

// tokenSecretBytes is the entropy of a minted secret (hex-encoded to 32 chars).
const tokenSecretBytes = 16

// TokenServiceOptions groups dependencies for TokenService.
type TokenServiceOptions struct {
	Repo   ports.TokenRepository // Required: token repository
	Logger *slog.Logger          // Optional: structured logger
}

// TokenService mints and manages platform tokens. Secrets are generated
// server-side with a type-specific prefix; callers never supply them.
type TokenService struct {
	repo   ports.TokenRepository
	logger *slog.Logger
}

// NewTokenService constructs a new TokenService.
func NewTokenService(opts TokenServiceOptions) (*TokenService, error) {
	if opts.Repo == nil {
		return nil, errors.New("TokenRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "token_service")
	}

	return &TokenService{repo: opts.Repo, logger: logger}, nil
}

// MustNewTokenService constructs a new TokenService and panics on error.
func MustNewTokenService(opts TokenServiceOptions) *TokenService {
	svc, err := NewTokenService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// mintSecret produces a fresh secret like "tk_live_<32 hex chars>".
func mintSecret(tokenType model.TokenType) (string, error) {
	buf := make([]byte, tokenSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token secret: %w", err)
	}
	return tokenType.SecretPrefix() + "_" + hex.EncodeToString(buf), nil
}

// Create validates the request, mints a secret, and stores the token. The
// returned record carries the full secret; this is the only time it is shown.
func (s *TokenService) Create(ctx context.Context, req model.CreateTokenRequest, createdBy string) (*model.APIToken, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	secret, err := mintSecret(req.Type)
	if err != nil {
		return nil, err
	}

	tok, err := s.repo.Create(ctx, &model.APIToken{
		Name:        req.Name,
		Secret:      secret,
		Type:        req.Type,
		Status:      model.TokenStatusActive,
		Description: req.Description,
		CreatedBy:   createdBy,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "token minted",
			"id", tok.ID, "type", tok.Type, "created_by", createdBy)
	}
	return tok, nil
}

// GetByID retrieves a token by its ID with the secret masked.
func (s *TokenService) GetByID(ctx context.Context, id string) (*model.APIToken, error) {
	tok, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get token by id: %w", err)
	}
	tok.Secret = tok.MaskedSecret()
	return tok, nil
}

// List returns tokens matching the options with secrets masked.
func (s *TokenService) List(ctx context.Context, opts model.TokenListOptions) ([]*model.APIToken, error) {
	tokens, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	for _, tok := range tokens {
		tok.Secret = tok.MaskedSecret()
	}
	return tokens, nil
}

// Update modifies a token's metadata. The secret itself never changes; mint a
// new token to rotate.
func (s *TokenService) Update(ctx context.Context, id string, req model.UpdateTokenRequest) (*model.APIToken, error) {
	tok, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update token: %w", err)
	}
	tok.Secret = tok.MaskedSecret()
	return tok, nil
}

// Delete revokes a token. It reports whether a record was removed.
func (s *TokenService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete token: %w", err)
	}
	if ok && s.logger != nil {
		s.logger.InfoContext(ctx, "token revoked", "id", id)
	}
	return ok, nil
}
