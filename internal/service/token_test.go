package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tillflow/admin-api/internal/domain/model"
	apperrors "github.com/tillflow/admin-api/internal/errors"
	"github.com/tillflow/admin-api/internal/mocks"
	"github.com/tillflow/admin-api/internal/ports"
)

// Helper function to create a TokenService for testing.
func newTestTokenService(t *testing.T, repo ports.TokenRepository) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenServiceOptions{Repo: repo})
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_RequiredDependency(t *testing.T) {
	svc, err := NewTokenService(TokenServiceOptions{Repo: nil})

	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "TokenRepository is required")
}

func TestTokenService_Create_MintsSecretWithTypePrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTokenRepository(ctrl)
	svc := newTestTokenService(t, mockRepo)

	ctx := context.Background()
	req := model.CreateTokenRequest{
		Name:      "Checkout key",
		Type:      model.TokenTypePayment,
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}

	var stored *model.APIToken
	mockRepo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, tok *model.APIToken) (*model.APIToken, error) {
			stored = tok
			out := *tok
			out.ID = "tok-1"
			return &out, nil
		}).
		Times(1)

	got, err := svc.Create(ctx, req, "admin@tillflow.io")

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, strings.HasPrefix(stored.Secret, "tk_live_"), "secret %q should carry the payment prefix", stored.Secret)
	assert.Len(t, stored.Secret, len("tk_live_")+2*tokenSecretBytes)
	assert.Equal(t, model.TokenStatusActive, stored.Status)
	assert.Equal(t, "admin@tillflow.io", stored.CreatedBy)

	// The create response is the only place the full secret appears.
	assert.Equal(t, stored.Secret, got.Secret)
}

func TestTokenService_Create_InvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTokenRepository(ctrl)
	svc := newTestTokenService(t, mockRepo)

	got, err := svc.Create(context.Background(), model.CreateTokenRequest{}, "admin@tillflow.io")

	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, apperrors.IsValidation(err))
}

func TestTokenService_GetByID_MasksSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTokenRepository(ctrl)
	svc := newTestTokenService(t, mockRepo)

	ctx := context.Background()

	mockRepo.EXPECT().
		GetByID(ctx, "tok-1").
		Return(&model.APIToken{
			ID:     "tok-1",
			Secret: "tk_api_a1b2c3d4e5f60718293a4b5c6d7e8f90",
			Type:   model.TokenTypeAPI,
		}, nil).
		Times(1)

	got, err := svc.GetByID(ctx, "tok-1")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.Secret, "tk_api_"))
	assert.True(t, strings.HasSuffix(got.Secret, "8f90"))
	assert.Contains(t, got.Secret, "****")
	assert.NotContains(t, got.Secret, "a1b2c3d4")
}

func TestTokenService_List_MasksAllSecrets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTokenRepository(ctrl)
	svc := newTestTokenService(t, mockRepo)

	ctx := context.Background()

	mockRepo.EXPECT().
		List(ctx, gomock.Any()).
		Return([]*model.APIToken{
			{ID: "a", Secret: "tk_live_00112233445566778899aabbccddeeff"},
			{ID: "b", Secret: "tk_int_ffeeddccbbaa99887766554433221100"},
		}, nil).
		Times(1)

	got, err := svc.List(ctx, model.TokenListOptions{})

	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, tok := range got {
		assert.Contains(t, tok.Secret, "****")
	}
}

func TestTokenService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTokenRepository(ctrl)
	svc := newTestTokenService(t, mockRepo)

	ctx := context.Background()

	mockRepo.EXPECT().
		Delete(ctx, "tok-1").
		Return(true, nil).
		Times(1)

	ok, err := svc.Delete(ctx, "tok-1")

	require.NoError(t, err)
	assert.True(t, ok)
}
