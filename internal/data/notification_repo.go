package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tillflow/admin-api/internal/data/database"
	"github.com/tillflow/admin-api/internal/data/pgxutil"
	"github.com/tillflow/admin-api/internal/domain/model"
	apperrors "github.com/tillflow/admin-api/internal/errors"
)

// NotificationRepo provides CRUD operations for platform notifications.
type NotificationRepo struct {
	DB    *sql.DB
	Clock TimeProvider
}

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(db *sql.DB, clock TimeProvider) *NotificationRepo {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	return &NotificationRepo{DB: db, Clock: clock}
}

var notificationColumns = []string{
	"id", "title", "message", "type", "priority", "audience", "status",
	"scheduled_for", "sent_at", "sent_by", "recipients", "read_count",
	"created_at", "updated_at",
}

// Create inserts a composed notification.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	var out model.Notification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO notifications
				(title, message, type, priority, audience, status, scheduled_for, sent_at, sent_by, recipients)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING `+strings.Join(notificationColumns, ", "),
			n.Title, n.Message, n.Type, n.Priority, n.Audience, n.Status,
			n.ScheduledFor, n.SentAt, n.SentBy, n.Recipients)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Notification])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("create notification: %w", err))
	}
	return &out, nil
}

// GetByID fetches a notification by ID.
func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	var out model.Notification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+strings.Join(notificationColumns, ", ")+` FROM notifications WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Notification])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("get notification by id: %w", err))
	}
	return &out, nil
}

func notificationSortColumn(sort string) string {
	switch sort {
	case "sent_at", "priority", "created_at":
		return sort
	default:
		return "created_at"
	}
}

// List returns notifications matching the options, newest first by default.
func (r *NotificationRepo) List(ctx context.Context, opts model.NotificationListOptions) ([]*model.Notification, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	dir := "DESC"
	if strings.EqualFold(opts.Dir, "asc") {
		dir = "ASC"
	}

	conds := []database.Condition{}
	if opts.Type != nil {
		conds = append(conds, database.WhereCond("type", database.Equal, string(*opts.Type)))
	}
	if opts.Status != nil {
		conds = append(conds, database.WhereCond("status", database.Equal, string(*opts.Status)))
	}
	if opts.Audience != nil {
		conds = append(conds, database.WhereCond("audience", database.Equal, string(*opts.Audience)))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		pattern := "%" + strings.TrimSpace(*opts.Q) + "%"
		conds = append(conds, database.WhereRawCond("(title ILIKE $1 OR message ILIKE $1)", pattern))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("notifications",
		database.WithColumns(notificationColumns...),
		database.WithConditions(conds...),
		database.WithOrderBy(notificationSortColumn(opts.Sort), dir),
		database.WithLimit(opts.Limit),
		database.WithOffset(opts.Offset),
	))

	var slice []model.Notification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		slice, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Notification])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list notifications: %w", err))
	}

	notifications := make([]*model.Notification, len(slice))
	for i := range slice {
		notifications[i] = &slice[i]
	}
	return notifications, nil
}

// MarkSent transitions a draft or scheduled notification to sent, recording
// the send time and recipient count. Already sent notifications are left
// untouched and reported as NotFound.
func (r *NotificationRepo) MarkSent(ctx context.Context, id string, recipients int) (*model.Notification, error) {
	var out model.Notification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE notifications
			SET status = 'sent', sent_at = $2, recipients = $3, updated_at = now()
			WHERE id = $1 AND status <> 'sent'
			RETURNING `+strings.Join(notificationColumns, ", "),
			id, r.Clock.Now(), recipients)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Notification])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("mark notification sent: %w", err))
	}
	return &out, nil
}

// Delete removes a notification by ID.
func (r *NotificationRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(fmt.Errorf("delete notification: %w", err))
	}
	return affected > 0, nil
}
