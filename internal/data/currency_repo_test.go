package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillflow/admin-api/internal/domain/model"
	apperrors "github.com/tillflow/admin-api/internal/errors"
	"github.com/tillflow/admin-api/internal/testutil"
)

func createTestCurrency(t *testing.T, repo *CurrencyRepo, code, name string) *model.Currency {
	t.Helper()
	c, err := repo.Create(context.Background(), &model.CreateCurrencyRequest{
		Code:         code,
		Name:         name,
		Symbol:       code,
		ExchangeRate: 1,
	})
	require.NoError(t, err)
	return c
}

func TestCurrencyRepo_FirstCurrencyBecomesDefault(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewCurrencyRepo(db)

		kes := createTestCurrency(t, repo, "KES", "Kenyan Shilling")
		assert.True(t, kes.IsDefault)

		usd := createTestCurrency(t, repo, "USD", "US Dollar")
		assert.False(t, usd.IsDefault)
	})
}

func TestCurrencyRepo_SetDefault_FlipsPreviousDefault(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCurrencyRepo(db)

		kes := createTestCurrency(t, repo, "KES", "Kenyan Shilling")
		usd := createTestCurrency(t, repo, "USD", "US Dollar")

		promoted, err := repo.SetDefault(ctx, usd.ID)
		require.NoError(t, err)
		assert.True(t, promoted.IsDefault)

		demoted, err := repo.GetByID(ctx, kes.ID)
		require.NoError(t, err)
		assert.False(t, demoted.IsDefault)

		// default sorts first
		lst, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, lst, 2)
		assert.Equal(t, usd.ID, lst[0].ID)
	})
}

func TestCurrencyRepo_SetDefault_RejectsDisabled(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCurrencyRepo(db)

		createTestCurrency(t, repo, "KES", "Kenyan Shilling")
		usd := createTestCurrency(t, repo, "USD", "US Dollar")

		_, err := repo.Update(ctx, usd.ID, model.UpdateCurrencyRequest{
			IsEnabled: testutil.BoolPtr(false),
		})
		require.NoError(t, err)

		_, err = repo.SetDefault(ctx, usd.ID)
		assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
	})
}

func TestCurrencyRepo_DuplicateCodeConflict(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewCurrencyRepo(db)

		createTestCurrency(t, repo, "KES", "Kenyan Shilling")
		_, err := repo.Create(context.Background(), &model.CreateCurrencyRequest{
			Code:         "kes", // normalizes to KES
			Name:         "Duplicate",
			Symbol:       "KSh",
			ExchangeRate: 1,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err), "expected conflict error, got %v", err)
		assert.Equal(t, "code", apperrors.GetField(err))
	})
}

func TestCurrencyRepo_Delete_DefaultBlocked(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCurrencyRepo(db)

		kes := createTestCurrency(t, repo, "KES", "Kenyan Shilling")
		usd := createTestCurrency(t, repo, "USD", "US Dollar")

		_, err := repo.Delete(ctx, kes.ID)
		assert.True(t, apperrors.IsValidation(err))

		ok, err := repo.Delete(ctx, usd.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		// deleting a missing currency is not an error
		ok, err = repo.Delete(ctx, usd.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
