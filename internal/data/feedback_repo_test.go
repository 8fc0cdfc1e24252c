package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
	"github.com/tillflow/admin-api/internal/domain/model"
	apperrors "github.com/tillflow/admin-api/internal/errors"
	"github.com/tillflow/admin-api/internal/testutil"
)

func seedFeedback(subject string, status model.FeedbackStatus) *model.Feedback {
	return &model.Feedback{
		UserName:  "Ada Merchant",
		UserEmail: "ada@example.com",
		UserRole:  domainauth.RoleMerchant,
		Subject:   subject,
		Message:   "The settlement report arrives a day late.",
		Category:  model.FeedbackCategoryImprovement,
		Priority:  "medium",
		Status:    status,
	}
}

func TestFeedbackRepo_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewFeedbackRepo(db, nil)

		created, err := repo.Create(ctx, seedFeedback("Late reports", model.FeedbackStatusPending))
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.False(t, created.SubmittedAt.IsZero())

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Late reports", got.Subject)
		assert.Equal(t, model.FeedbackStatusPending, got.Status)
		assert.Nil(t, got.Response)
	})
}

func TestFeedbackRepo_ListFilters(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewFeedbackRepo(db, nil)

		_, err := repo.Create(ctx, seedFeedback("Late reports", model.FeedbackStatusPending))
		require.NoError(t, err)
		_, err = repo.Create(ctx, seedFeedback("Dashboard praise", model.FeedbackStatusResolved))
		require.NoError(t, err)

		pending := model.FeedbackStatusPending
		lst, err := repo.List(ctx, model.FeedbackListOptions{Status: &pending})
		require.NoError(t, err)
		require.Len(t, lst, 1)
		assert.Equal(t, "Late reports", lst[0].Subject)

		q := "praise"
		lst, err = repo.List(ctx, model.FeedbackListOptions{Q: &q})
		require.NoError(t, err)
		require.Len(t, lst, 1)
		assert.Equal(t, "Dashboard praise", lst[0].Subject)
	})
}

func TestFeedbackRepo_RespondSetsStatusAndTimestamp(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
		repo := NewFeedbackRepo(db, NewFixedTimeProvider(now))

		created, err := repo.Create(ctx, seedFeedback("Late reports", model.FeedbackStatusPending))
		require.NoError(t, err)

		responded, err := repo.Respond(ctx, created.ID, model.RespondFeedbackRequest{
			Response: "Settlement export now runs hourly.",
			Status:   model.FeedbackStatusResolved,
		})
		require.NoError(t, err)
		require.NotNil(t, responded.Response)
		assert.Equal(t, "Settlement export now runs hourly.", *responded.Response)
		assert.Equal(t, model.FeedbackStatusResolved, responded.Status)
		require.NotNil(t, responded.RespondedAt)
		assert.True(t, responded.RespondedAt.Equal(now))
	})
}

func TestFeedbackRepo_SetStatusAndDelete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewFeedbackRepo(db, nil)

		created, err := repo.Create(ctx, seedFeedback("Late reports", model.FeedbackStatusPending))
		require.NoError(t, err)

		updated, err := repo.SetStatus(ctx, created.ID, model.FeedbackStatusReviewed)
		require.NoError(t, err)
		assert.Equal(t, model.FeedbackStatusReviewed, updated.Status)

		ok, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = repo.GetByID(ctx, created.ID)
		assert.True(t, apperrors.IsNotFound(err))

		ok, err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
