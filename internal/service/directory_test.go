package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
	"github.com/tillflow/admin-api/internal/domain/model"
	"github.com/tillflow/admin-api/internal/mocks"
)

const testBearer = "backend-token-abc"

// Helper function to create a DirectoryService with both gateways mocked.
func newTestDirectoryService(t *testing.T, ctrl *gomock.Controller) (*DirectoryService, *mocks.MockDirectoryGateway, *mocks.MockProfileGateway) {
	t.Helper()
	dir := mocks.NewMockDirectoryGateway(ctrl)
	prof := mocks.NewMockProfileGateway(ctrl)
	svc, err := NewDirectoryService(DirectoryServiceOptions{Directory: dir, Profiles: prof})
	require.NoError(t, err)
	return svc, dir, prof
}

func TestNewDirectoryService_RequiredDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := NewDirectoryService(DirectoryServiceOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DirectoryGateway is required")

	_, err = NewDirectoryService(DirectoryServiceOptions{Directory: mocks.NewMockDirectoryGateway(ctrl)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ProfileGateway is required")
}

func TestDirectoryService_ListUsers_ForwardsToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, dir, _ := newTestDirectoryService(t, ctrl)
	ctx := context.Background()
	expected := []model.DirectoryUser{{ID: "u1", Email: "a@b.c", Role: domainauth.RoleAdmin}}

	dir.EXPECT().
		ListUsers(ctx, testBearer).
		Return(expected, nil).
		Times(1)

	got, err := svc.ListUsers(ctx, testBearer)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestDirectoryService_UpdateUserRole_RejectsUnknownRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestDirectoryService(t, ctrl)

	err := svc.UpdateUserRole(context.Background(), testBearer, "u1", domainauth.Role("superuser"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestDirectoryService_UpdateUserRole_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, dir, _ := newTestDirectoryService(t, ctrl)
	ctx := context.Background()

	dir.EXPECT().
		UpdateUserRole(ctx, testBearer, "u1", domainauth.RoleMerchant).
		Return(nil).
		Times(1)

	err := svc.UpdateUserRole(ctx, testBearer, "u1", domainauth.RoleMerchant)
	require.NoError(t, err)
}

func TestDirectoryService_GetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, prof := newTestDirectoryService(t, ctrl)
	ctx := context.Background()
	expected := &model.Profile{Email: "admin@tillflow.io"}

	prof.EXPECT().
		GetProfile(ctx, testBearer).
		Return(expected, nil).
		Times(1)

	got, err := svc.GetProfile(ctx, testBearer)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestDirectoryService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, prof := newTestDirectoryService(t, ctrl)
	ctx := context.Background()
	req := model.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "new-secret-1"}

	prof.EXPECT().
		ChangePassword(ctx, testBearer, req).
		Return(nil).
		Times(1)

	err := svc.ChangePassword(ctx, testBearer, req)
	require.NoError(t, err)
}
