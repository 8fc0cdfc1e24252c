package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tillflow/admin-api/internal/domain/model"
	"github.com/tillflow/admin-api/internal/mocks"
	"github.com/tillflow/admin-api/internal/ports"
)

const testBusinessID = "biz-1"

// Helper function to create a BusinessService for testing.
func newTestBusinessService(t *testing.T, repo ports.BusinessRepository) *BusinessService {
	t.Helper()
	svc, err := NewBusinessService(BusinessServiceOptions{Repo: repo})
	require.NoError(t, err)
	return svc
}

func TestNewBusinessService_RequiredDependency(t *testing.T) {
	svc, err := NewBusinessService(BusinessServiceOptions{Repo: nil})

	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "BusinessRepository is required")
}

func TestMustNewBusinessService_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewBusinessService(BusinessServiceOptions{Repo: nil})
	})
}

func TestBusinessService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockBusinessRepository(ctrl)
	svc := newTestBusinessService(t, mockRepo)

	ctx := context.Background()
	req := &model.CreateBusinessRequest{
		Name:     "Acme Grocers",
		Type:     "retail",
		Merchant: model.Merchant{ID: "merch-1"},
		Location: "Nairobi",
	}
	expected := &model.Business{
		ID:   testBusinessID,
		Name: "Acme Grocers",
		Merchant: model.Merchant{
			ID: "merch-1",
		},
	}

	mockRepo.EXPECT().
		Create(ctx, req).
		Return(expected, nil).
		Times(1)

	got, err := svc.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestBusinessService_Create_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockBusinessRepository(ctrl)
	svc := newTestBusinessService(t, mockRepo)

	ctx := context.Background()
	repoErr := errors.New("database connection failed")

	mockRepo.EXPECT().
		Create(ctx, gomock.Any()).
		Return(nil, repoErr).
		Times(1)

	got, err := svc.Create(ctx, &model.CreateBusinessRequest{Name: "x"})

	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, repoErr)
}

func TestBusinessService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockBusinessRepository(ctrl)
	svc := newTestBusinessService(t, mockRepo)

	ctx := context.Background()
	expected := &model.Business{ID: testBusinessID, Name: "Acme Grocers"}

	mockRepo.EXPECT().
		GetByID(ctx, testBusinessID).
		Return(expected, nil).
		Times(1)

	got, err := svc.GetByID(ctx, testBusinessID)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestBusinessService_List_PassesOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockBusinessRepository(ctrl)
	svc := newTestBusinessService(t, mockRepo)

	ctx := context.Background()
	status := model.BusinessStatusActive
	opts := model.BusinessListOptions{Limit: 10, Status: &status}

	mockRepo.EXPECT().
		List(ctx, opts).
		Return([]*model.Business{}, nil).
		Times(1)

	got, err := svc.List(ctx, opts)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBusinessService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockBusinessRepository(ctrl)
	svc := newTestBusinessService(t, mockRepo)

	ctx := context.Background()

	mockRepo.EXPECT().
		Delete(ctx, testBusinessID).
		Return(true, nil).
		Times(1)

	ok, err := svc.Delete(ctx, testBusinessID)

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBusinessService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockBusinessRepository(ctrl)
	svc := newTestBusinessService(t, mockRepo)

	ctx := context.Background()
	expected := model.BusinessStats{Total: 12, Active: 9, Inactive: 3, TotalRevenue: 45000}

	mockRepo.EXPECT().
		Stats(ctx).
		Return(expected, nil).
		Times(1)

	got, err := svc.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}
