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

// TokenRepo provides CRUD operations for issued platform tokens.
type TokenRepo struct {
	DB    *sql.DB
	Clock TimeProvider
}

// NewTokenRepo creates a new TokenRepo.
func NewTokenRepo(db *sql.DB, clock TimeProvider) *TokenRepo {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	return &TokenRepo{DB: db, Clock: clock}
}

var tokenColumns = []string{
	"id", "name", "secret", "type", "status", "description",
	"created_by", "usage_count", "last_used", "expires_at",
	"created_at", "updated_at",
}

// Create inserts an already minted token. The secret is generated by the
// service layer, never by callers.
func (r *TokenRepo) Create(ctx context.Context, tok *model.APIToken) (*model.APIToken, error) {
	var out model.APIToken
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO api_tokens (name, secret, type, status, description, created_by, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+strings.Join(tokenColumns, ", "),
			tok.Name, tok.Secret, tok.Type, tok.Status, tok.Description, tok.CreatedBy, tok.ExpiresAt)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.APIToken])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("create token: %w", err))
	}
	return &out, nil
}

// GetByID fetches a token by ID.
func (r *TokenRepo) GetByID(ctx context.Context, id string) (*model.APIToken, error) {
	var out model.APIToken
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+strings.Join(tokenColumns, ", ")+` FROM api_tokens WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.APIToken])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("get token by id: %w", err))
	}
	r.applyEffectiveStatus(&out)
	return &out, nil
}

func tokenSortColumn(sort string) string {
	switch sort {
	case "name", "expires_at", "created_at":
		return sort
	default:
		return "created_at"
	}
}

// List returns tokens matching the options, newest first by default. Stored
// statuses are adjusted for wall-clock expiry on the way out.
func (r *TokenRepo) List(ctx context.Context, opts model.TokenListOptions) ([]*model.APIToken, error) {
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
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		conds = append(conds, database.WhereCond("name", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("api_tokens",
		database.WithColumns(tokenColumns...),
		database.WithConditions(conds...),
		database.WithOrderBy(tokenSortColumn(opts.Sort), dir),
		database.WithLimit(opts.Limit),
		database.WithOffset(opts.Offset),
	))

	var tokensSlice []model.APIToken
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		tokensSlice, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.APIToken])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list tokens: %w", err))
	}

	tokens := make([]*model.APIToken, len(tokensSlice))
	for i := range tokensSlice {
		r.applyEffectiveStatus(&tokensSlice[i])
		tokens[i] = &tokensSlice[i]
	}
	return tokens, nil
}

// Update modifies a token's metadata and returns the updated record.
func (r *TokenRepo) Update(ctx context.Context, id string, req model.UpdateTokenRequest) (*model.APIToken, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setParts := make([]string, 0, 5)
	args := make([]any, 0, 6)
	argIdx := 1

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, string(*req.Status))
		argIdx++
	}
	if req.ExpiresAt != nil {
		setParts = append(setParts, fmt.Sprintf("expires_at = $%d", argIdx))
		args = append(args, *req.ExpiresAt)
		argIdx++
	}
	if len(setParts) == 0 {
		return nil, apperrors.Validation("no fields to update")
	}
	setParts = append(setParts, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE api_tokens SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setParts, ", "), argIdx, strings.Join(tokenColumns, ", "))

	var out model.APIToken
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.APIToken])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("update token: %w", err))
	}
	r.applyEffectiveStatus(&out)
	return &out, nil
}

// Delete removes a token by ID.
func (r *TokenRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM api_tokens WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(fmt.Errorf("delete token: %w", err))
	}
	return affected > 0, nil
}

func (r *TokenRepo) applyEffectiveStatus(tok *model.APIToken) {
	tok.Status = tok.EffectiveStatus(r.Clock.Now())
}
