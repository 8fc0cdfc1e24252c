package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillflow/admin-api/internal/domain/model"
	apperrors "github.com/tillflow/admin-api/internal/errors"
	"github.com/tillflow/admin-api/internal/testutil"
)

func seedNotification(title string, status model.NotificationStatus) *model.Notification {
	return &model.Notification{
		Title:    title,
		Message:  "Settlement maintenance window this weekend.",
		Type:     model.NotificationTypeMaintenance,
		Priority: model.NotificationPriorityMedium,
		Audience: model.AudienceAll,
		Status:   status,
		SentBy:   "admin@tillflow.example.com",
	}
}

func TestNotificationRepo_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewNotificationRepo(db, nil)

		created, err := repo.Create(ctx, seedNotification("Maintenance window", model.NotificationStatusDraft))
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Maintenance window", got.Title)
		assert.Equal(t, model.NotificationStatusDraft, got.Status)
		assert.Nil(t, got.SentAt)
	})
}

func TestNotificationRepo_ListFilters(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewNotificationRepo(db, nil)

		_, err := repo.Create(ctx, seedNotification("Maintenance window", model.NotificationStatusDraft))
		require.NoError(t, err)

		scheduled := seedNotification("Fee change", model.NotificationStatusScheduled)
		dueAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		scheduled.ScheduledFor = &dueAt
		_, err = repo.Create(ctx, scheduled)
		require.NoError(t, err)

		status := model.NotificationStatusScheduled
		lst, err := repo.List(ctx, model.NotificationListOptions{Status: &status})
		require.NoError(t, err)
		require.Len(t, lst, 1)
		assert.Equal(t, "Fee change", lst[0].Title)
		require.NotNil(t, lst[0].ScheduledFor)
	})
}

func TestNotificationRepo_MarkSent(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
		repo := NewNotificationRepo(db, NewFixedTimeProvider(now))

		created, err := repo.Create(ctx, seedNotification("Fee change", model.NotificationStatusScheduled))
		require.NoError(t, err)

		sent, err := repo.MarkSent(ctx, created.ID, 240)
		require.NoError(t, err)
		assert.Equal(t, model.NotificationStatusSent, sent.Status)
		assert.Equal(t, 240, sent.Recipients)
		require.NotNil(t, sent.SentAt)
		assert.True(t, sent.SentAt.Equal(now))

		// Already sent items cannot be sent again.
		_, err = repo.MarkSent(ctx, created.ID, 240)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestNotificationRepo_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewNotificationRepo(db, nil)

		created, err := repo.Create(ctx, seedNotification("Maintenance window", model.NotificationStatusDraft))
		require.NoError(t, err)

		ok, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
