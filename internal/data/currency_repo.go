package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tillflow/admin-api/internal/data/pgxutil"
	"github.com/tillflow/admin-api/internal/domain/model"
	apperrors "github.com/tillflow/admin-api/internal/errors"
)

// CurrencyRepo provides CRUD operations for platform currencies.
type CurrencyRepo struct {
	DB *sql.DB
}

// NewCurrencyRepo creates a new CurrencyRepo.
func NewCurrencyRepo(db *sql.DB) *CurrencyRepo {
	return &CurrencyRepo{DB: db}
}

var currencyColumns = []string{
	"id", "code", "name", "symbol", "exchange_rate",
	"is_enabled", "is_default", "created_at", "updated_at",
}

// Create inserts a currency. The first currency ever created becomes the
// default automatically.
func (r *CurrencyRepo) Create(ctx context.Context, req *model.CreateCurrencyRequest) (*model.Currency, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	enabled := true
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}

	var out model.Currency
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO currencies (code, name, symbol, exchange_rate, is_enabled, is_default)
			VALUES ($1, $2, $3, $4, $5,
				NOT EXISTS (SELECT 1 FROM currencies WHERE is_default))
			RETURNING `+strings.Join(currencyColumns, ", "),
			req.Code, req.Name, req.Symbol, req.ExchangeRate, enabled)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Currency])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("create currency: %w", err))
	}
	return &out, nil
}

// GetByID fetches a currency by ID.
func (r *CurrencyRepo) GetByID(ctx context.Context, id string) (*model.Currency, error) {
	var out model.Currency
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+strings.Join(currencyColumns, ", ")+` FROM currencies WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Currency])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("get currency by id: %w", err))
	}
	return &out, nil
}

// List returns all currencies, default first, then by code.
func (r *CurrencyRepo) List(ctx context.Context) ([]*model.Currency, error) {
	var slice []model.Currency
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+strings.Join(currencyColumns, ", ")+`
			 FROM currencies ORDER BY is_default DESC, code ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()
		slice, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Currency])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list currencies: %w", err))
	}

	currencies := make([]*model.Currency, len(slice))
	for i := range slice {
		currencies[i] = &slice[i]
	}
	return currencies, nil
}

// Update modifies a currency's mutable fields. The currency code is fixed at
// creation and the default flag only changes through SetDefault.
func (r *CurrencyRepo) Update(ctx context.Context, id string, req model.UpdateCurrencyRequest) (*model.Currency, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setParts := make([]string, 0, 4)
	args := make([]any, 0, 5)
	argIdx := 1

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Symbol != nil {
		setParts = append(setParts, fmt.Sprintf("symbol = $%d", argIdx))
		args = append(args, *req.Symbol)
		argIdx++
	}
	if req.ExchangeRate != nil {
		setParts = append(setParts, fmt.Sprintf("exchange_rate = $%d", argIdx))
		args = append(args, *req.ExchangeRate)
		argIdx++
	}
	if req.IsEnabled != nil {
		setParts = append(setParts, fmt.Sprintf("is_enabled = $%d", argIdx))
		args = append(args, *req.IsEnabled)
		argIdx++
	}
	if len(setParts) == 0 {
		return nil, apperrors.Validation("no fields to update")
	}
	setParts = append(setParts, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE currencies SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setParts, ", "), argIdx, strings.Join(currencyColumns, ", "))

	var out model.Currency
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Currency])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("update currency: %w", err))
	}
	return &out, nil
}

// SetDefault makes the given currency the platform default. The previous
// default is demoted in the same transaction so exactly one default survives.
func (r *CurrencyRepo) SetDefault(ctx context.Context, id string) (*model.Currency, error) {
	var out model.Currency
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			var enabled bool
			if err := tx.QueryRow(ctx,
				`SELECT is_enabled FROM currencies WHERE id = $1`, id).Scan(&enabled); err != nil {
				return err
			}
			if !enabled {
				return apperrors.Validation("a disabled currency cannot be the default")
			}

			if _, err := tx.Exec(ctx,
				`UPDATE currencies SET is_default = FALSE, updated_at = now() WHERE is_default`); err != nil {
				return err
			}

			rows, err := tx.Query(ctx, `
				UPDATE currencies SET is_default = TRUE, updated_at = now()
				WHERE id = $1
				RETURNING `+strings.Join(currencyColumns, ", "), id)
			if err != nil {
				return err
			}
			defer rows.Close()
			out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Currency])
			return err
		},
	})
	if err != nil {
		if apperrors.IsValidation(err) {
			return nil, err
		}
		return nil, apperrors.MapDBError(fmt.Errorf("set default currency: %w", err))
	}
	return &out, nil
}

// Delete removes a currency by ID. The default currency cannot be deleted.
func (r *CurrencyRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var isDefault bool
		err := conn.QueryRow(ctx,
			`SELECT is_default FROM currencies WHERE id = $1`, id).Scan(&isDefault)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		if isDefault {
			return apperrors.Validation("the default currency cannot be deleted")
		}

		ct, err := conn.Exec(ctx, `DELETE FROM currencies WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		if apperrors.IsValidation(err) {
			return false, err
		}
		return false, apperrors.MapDBError(fmt.Errorf("delete currency: %w", err))
	}
	return affected > 0, nil
}
