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

// FeedbackRepo provides CRUD operations for user feedback.
type FeedbackRepo struct {
	DB    *sql.DB
	Clock TimeProvider
}

// NewFeedbackRepo creates a new FeedbackRepo.
func NewFeedbackRepo(db *sql.DB, clock TimeProvider) *FeedbackRepo {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	return &FeedbackRepo{DB: db, Clock: clock}
}

var feedbackColumns = []string{
	"id", "user_name", "user_email", "user_role", "subject", "message",
	"category", "priority", "status", "rating", "response",
	"submitted_at", "responded_at",
}

// Create inserts a submitted feedback item.
func (r *FeedbackRepo) Create(ctx context.Context, fb *model.Feedback) (*model.Feedback, error) {
	var out model.Feedback
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO feedback
				(user_name, user_email, user_role, subject, message, category, priority, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+strings.Join(feedbackColumns, ", "),
			fb.UserName, fb.UserEmail, fb.UserRole, fb.Subject, fb.Message,
			fb.Category, fb.Priority, fb.Rating)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Feedback])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("create feedback: %w", err))
	}
	return &out, nil
}

// GetByID fetches a feedback item by ID.
func (r *FeedbackRepo) GetByID(ctx context.Context, id string) (*model.Feedback, error) {
	var out model.Feedback
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+strings.Join(feedbackColumns, ", ")+` FROM feedback WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Feedback])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("get feedback by id: %w", err))
	}
	return &out, nil
}

func feedbackSortColumn(sort string) string {
	switch sort {
	case "priority", "submitted_at":
		return sort
	default:
		return "submitted_at"
	}
}

// List returns feedback matching the options, newest first by default.
func (r *FeedbackRepo) List(ctx context.Context, opts model.FeedbackListOptions) ([]*model.Feedback, error) {
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
	if opts.Category != nil {
		conds = append(conds, database.WhereCond("category", database.Equal, string(*opts.Category)))
	}
	if opts.Status != nil {
		conds = append(conds, database.WhereCond("status", database.Equal, string(*opts.Status)))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		pattern := "%" + strings.TrimSpace(*opts.Q) + "%"
		conds = append(conds, database.WhereRawCond(
			"(subject ILIKE $1 OR message ILIKE $1 OR user_name ILIKE $1 OR user_email ILIKE $1)", pattern))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("feedback",
		database.WithColumns(feedbackColumns...),
		database.WithConditions(conds...),
		database.WithOrderBy(feedbackSortColumn(opts.Sort), dir),
		database.WithLimit(opts.Limit),
		database.WithOffset(opts.Offset),
	))

	var slice []model.Feedback
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		slice, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Feedback])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list feedback: %w", err))
	}

	items := make([]*model.Feedback, len(slice))
	for i := range slice {
		items[i] = &slice[i]
	}
	return items, nil
}

// Respond records an admin response and moves the item out of pending.
func (r *FeedbackRepo) Respond(ctx context.Context, id string, req model.RespondFeedbackRequest) (*model.Feedback, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Feedback
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE feedback
			SET response = $2, status = $3, responded_at = $4
			WHERE id = $1
			RETURNING `+strings.Join(feedbackColumns, ", "),
			id, req.Response, string(req.Status), r.Clock.Now())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Feedback])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("respond to feedback: %w", err))
	}
	return &out, nil
}

// SetStatus updates only the triage status.
func (r *FeedbackRepo) SetStatus(ctx context.Context, id string, status model.FeedbackStatus) (*model.Feedback, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("status must be one of: pending, reviewed, resolved, closed")
	}

	var out model.Feedback
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE feedback SET status = $2 WHERE id = $1
			RETURNING `+strings.Join(feedbackColumns, ", "),
			id, string(status))
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Feedback])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("set feedback status: %w", err))
	}
	return &out, nil
}

// Delete removes a feedback item by ID.
func (r *FeedbackRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(fmt.Errorf("delete feedback: %w", err))
	}
	return affected > 0, nil
}
