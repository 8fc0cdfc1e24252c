package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tillflow/admin-api/internal/data/database"
	"github.com/tillflow/admin-api/internal/data/pgxutil"
	"github.com/tillflow/admin-api/internal/domain/model"
	apperrors "github.com/tillflow/admin-api/internal/errors"
)

// BusinessRepo provides CRUD operations for registered businesses.
type BusinessRepo struct {
	DB *sql.DB
}

// NewBusinessRepo creates a new BusinessRepo.
func NewBusinessRepo(db *sql.DB) *BusinessRepo {
	return &BusinessRepo{DB: db}
}

// businessRow is the flat scan target; merchant columns come from the join.
type businessRow struct {
	ID            string               `db:"id"`
	Name          string               `db:"name"`
	Type          string               `db:"type"`
	Status        model.BusinessStatus `db:"status"`
	Location      string               `db:"location"`
	Phone         string               `db:"phone"`
	Email         string               `db:"email"`
	Description   string               `db:"description"`
	Revenue       int64                `db:"revenue"`
	Transactions  int64                `db:"transactions"`
	RegisteredAt  time.Time            `db:"registered_at"`
	UpdatedAt     time.Time            `db:"updated_at"`
	MerchantID    string               `db:"merchant_id"`
	MerchantName  string               `db:"merchant_name"`
	MerchantEmail string               `db:"merchant_email"`
}

func (row businessRow) toModel() *model.Business {
	return &model.Business{
		ID:   row.ID,
		Name: row.Name,
		Type: row.Type,
		Merchant: model.Merchant{
			ID:    row.MerchantID,
			Name:  row.MerchantName,
			Email: row.MerchantEmail,
		},
		Status:       row.Status,
		Location:     row.Location,
		Phone:        row.Phone,
		Email:        row.Email,
		Description:  row.Description,
		Revenue:      row.Revenue,
		Transactions: row.Transactions,
		RegisteredAt: row.RegisteredAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

const businessColumns = `
	b.id, b.name, b.type, b.status, b.location, b.phone, b.email,
	b.description, b.revenue, b.transactions, b.registered_at, b.updated_at,
	b.merchant_id, m.name AS merchant_name, m.email AS merchant_email`

// Create registers a business under an existing merchant.
func (r *BusinessRepo) Create(ctx context.Context, req *model.CreateBusinessRequest) (*model.Business, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out businessRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			WITH inserted AS (
				INSERT INTO businesses (name, type, status, merchant_id, location, phone, email, description)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING *
			)
			SELECT i.id, i.name, i.type, i.status, i.location, i.phone, i.email,
			       i.description, i.revenue, i.transactions, i.registered_at, i.updated_at,
			       i.merchant_id, m.name AS merchant_name, m.email AS merchant_email
			FROM inserted i
			JOIN merchants m ON m.id = i.merchant_id`,
			req.Name, req.Type, req.Status, req.Merchant.ID,
			req.Location, req.Phone, req.Email, req.Description)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[businessRow])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("create business: %w", err))
	}
	return out.toModel(), nil
}

// GetByID fetches a business by ID.
func (r *BusinessRepo) GetByID(ctx context.Context, id string) (*model.Business, error) {
	var out businessRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+businessColumns+`
			FROM businesses b
			JOIN merchants m ON m.id = b.merchant_id
			WHERE b.id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[businessRow])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("get business by id: %w", err))
	}
	return out.toModel(), nil
}

// businessSortColumn whitelists sortable columns.
func businessSortColumn(sort string) string {
	switch sort {
	case "name", "revenue", "registered_at":
		return "b." + sort
	default:
		return "b.registered_at"
	}
}

// List returns businesses matching the options, newest first by default.
func (r *BusinessRepo) List(ctx context.Context, opts model.BusinessListOptions) ([]*model.Business, error) {
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
	if opts.Status != nil {
		conds = append(conds, database.WhereRawCond("b.status = $1", string(*opts.Status)))
	}
	if opts.Type != nil {
		conds = append(conds, database.WhereRawCond("b.type = $1", *opts.Type))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		pattern := "%" + strings.TrimSpace(*opts.Q) + "%"
		conds = append(conds, database.WhereRawCond(
			"(b.name ILIKE $1 OR m.name ILIKE $1 OR b.location ILIKE $1)", pattern))
	}

	where, args, next := database.BuildWhereClause(conds, 1)
	query := `SELECT ` + businessColumns + `
		FROM businesses b
		JOIN merchants m ON m.id = b.merchant_id`
	if where != "" {
		query += " " + where
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		businessSortColumn(opts.Sort), dir, next, next+1)
	args = append(args, opts.Limit, opts.Offset)

	var rowsOut []businessRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[businessRow])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list businesses: %w", err))
	}

	businesses := make([]*model.Business, len(rowsOut))
	for i := range rowsOut {
		businesses[i] = rowsOut[i].toModel()
	}
	return businesses, nil
}

// Update modifies a business and returns the updated record.
func (r *BusinessRepo) Update(ctx context.Context, id string, req model.UpdateBusinessRequest) (*model.Business, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setParts := make([]string, 0, 8)
	args := make([]any, 0, 9)
	argIdx := 1

	add := func(col string, val any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}
	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Type != nil {
		add("type", *req.Type)
	}
	if req.Status != nil {
		add("status", string(*req.Status))
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.Phone != nil {
		add("phone", *req.Phone)
	}
	if req.Email != nil {
		add("email", *req.Email)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if len(setParts) == 0 {
		return nil, apperrors.Validation("no fields to update")
	}
	setParts = append(setParts, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`
		WITH updated AS (
			UPDATE businesses SET %s WHERE id = $%d
			RETURNING *
		)
		SELECT u.id, u.name, u.type, u.status, u.location, u.phone, u.email,
		       u.description, u.revenue, u.transactions, u.registered_at, u.updated_at,
		       u.merchant_id, m.name AS merchant_name, m.email AS merchant_email
		FROM updated u
		JOIN merchants m ON m.id = u.merchant_id`,
		strings.Join(setParts, ", "), argIdx)

	var out businessRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[businessRow])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("update business: %w", err))
	}
	return out.toModel(), nil
}

// Delete removes a business by ID.
func (r *BusinessRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(fmt.Errorf("delete business: %w", err))
	}
	return affected > 0, nil
}

// Stats returns the aggregate counts shown above the businesses table.
func (r *BusinessRepo) Stats(ctx context.Context) (model.BusinessStats, error) {
	var stats model.BusinessStats
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT COUNT(*),
			       COUNT(*) FILTER (WHERE status = 'active'),
			       COUNT(*) FILTER (WHERE status = 'inactive'),
			       COALESCE(SUM(revenue), 0)
			FROM businesses`).
			Scan(&stats.Total, &stats.Active, &stats.Inactive, &stats.TotalRevenue)
	})
	if err != nil {
		return model.BusinessStats{}, apperrors.MapDBError(fmt.Errorf("business stats: %w", err))
	}
	return stats, nil
}
