package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tillflow/admin-api/internal/domain/model"
	"github.com/tillflow/admin-api/internal/ports"
)

// BusinessServiceOptions groups dependencies for BusinessService.
type BusinessServiceOptions struct {
	Repo   ports.BusinessRepository // Required: business repository
	Logger *slog.Logger             // Optional: structured logger
}

// BusinessService provides business logic for registered businesses.
type BusinessService struct {
	repo   ports.BusinessRepository
	logger *slog.Logger
}

// NewBusinessService constructs a new BusinessService.
func NewBusinessService(opts BusinessServiceOptions) (*BusinessService, error) {
	if opts.Repo == nil {
		return nil, errors.New("BusinessRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "business_service")
	}

	return &BusinessService{repo: opts.Repo, logger: logger}, nil
}

// MustNewBusinessService constructs a new BusinessService and panics on error.
func MustNewBusinessService(opts BusinessServiceOptions) *BusinessService {
	svc, err := NewBusinessService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Create registers a new business.
func (s *BusinessService) Create(ctx context.Context, req *model.CreateBusinessRequest) (*model.Business, error) {
	b, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create business: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "business registered", "id", b.ID, "merchant_id", b.Merchant.ID)
	}
	return b, nil
}

// GetByID retrieves a business by its ID.
func (s *BusinessService) GetByID(ctx context.Context, id string) (*model.Business, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get business by id: %w", err)
	}
	return b, nil
}

// List returns businesses matching the options.
func (s *BusinessService) List(ctx context.Context, opts model.BusinessListOptions) ([]*model.Business, error) {
	businesses, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	return businesses, nil
}

// Update modifies a business.
func (s *BusinessService) Update(ctx context.Context, id string, req model.UpdateBusinessRequest) (*model.Business, error) {
	b, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update business: %w", err)
	}
	return b, nil
}

// Delete removes a business. It reports whether a record was removed.
func (s *BusinessService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete business: %w", err)
	}
	return ok, nil
}

// Stats returns the aggregate business counts.
func (s *BusinessService) Stats(ctx context.Context) (model.BusinessStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return model.BusinessStats{}, fmt.Errorf("business stats: %w", err)
	}
	return stats, nil
}
