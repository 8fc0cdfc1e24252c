package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tillflow/admin-api/internal/domain/model"
	"github.com/tillflow/admin-api/internal/ports"
)

// CurrencyServiceOptions groups dependencies for CurrencyService.
type CurrencyServiceOptions struct {
	Repo   ports.CurrencyRepository // Required: currency repository
	Logger *slog.Logger             // Optional: structured logger
}

// CurrencyService provides business logic for supported currencies.
// Exactly one currency is the platform default at any time; the repository
// enforces that invariant transactionally.
type CurrencyService struct {
	repo   ports.CurrencyRepository
	logger *slog.Logger
}

// NewCurrencyService constructs a new CurrencyService.
func NewCurrencyService(opts CurrencyServiceOptions) (*CurrencyService, error) {
	if opts.Repo == nil {
		return nil, errors.New("CurrencyRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "currency_service")
	}

	return &CurrencyService{repo: opts.Repo, logger: logger}, nil
}

// MustNewCurrencyService constructs a new CurrencyService and panics on error.
func MustNewCurrencyService(opts CurrencyServiceOptions) *CurrencyService {
	svc, err := NewCurrencyService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Create adds a supported currency. The first currency ever created becomes
// the platform default.
func (s *CurrencyService) Create(ctx context.Context, req *model.CreateCurrencyRequest) (*model.Currency, error) {
	c, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create currency: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "currency created", "id", c.ID, "code", c.Code, "default", c.IsDefault)
	}
	return c, nil
}

// GetByID retrieves a currency by its ID.
func (s *CurrencyService) GetByID(ctx context.Context, id string) (*model.Currency, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get currency by id: %w", err)
	}
	return c, nil
}

// List returns all configured currencies, default first.
func (s *CurrencyService) List(ctx context.Context) ([]*model.Currency, error) {
	currencies, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	return currencies, nil
}

// Update modifies a currency's name, symbol, rate, or enabled flag.
func (s *CurrencyService) Update(ctx context.Context, id string, req model.UpdateCurrencyRequest) (*model.Currency, error) {
	c, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update currency: %w", err)
	}
	return c, nil
}

// SetDefault promotes a currency to the platform default, demoting the
// previous one.
func (s *CurrencyService) SetDefault(ctx context.Context, id string) (*model.Currency, error) {
	c, err := s.repo.SetDefault(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("set default currency: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "default currency changed", "id", c.ID, "code", c.Code)
	}
	return c, nil
}

// Delete removes a currency. The default currency cannot be deleted.
func (s *CurrencyService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete currency: %w", err)
	}
	return ok, nil
}
