package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tillflow/admin-api/internal/domain/model"
	apperrors "github.com/tillflow/admin-api/internal/errors"
	"github.com/tillflow/admin-api/internal/ports"
)

// FeedbackServiceOptions groups dependencies for FeedbackService.
type FeedbackServiceOptions struct {
	Repo   ports.FeedbackRepository // Required: feedback repository
	Logger *slog.Logger             // Optional: structured logger
}

// FeedbackService provides business logic for user feedback triage.
type FeedbackService struct {
	repo   ports.FeedbackRepository
	logger *slog.Logger
}

// NewFeedbackService constructs a new FeedbackService.
func NewFeedbackService(opts FeedbackServiceOptions) (*FeedbackService, error) {
	if opts.Repo == nil {
		return nil, errors.New("FeedbackRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "feedback_service")
	}

	return &FeedbackService{repo: opts.Repo, logger: logger}, nil
}

// MustNewFeedbackService constructs a new FeedbackService and panics on error.
func MustNewFeedbackService(opts FeedbackServiceOptions) *FeedbackService {
	svc, err := NewFeedbackService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Submit records a new feedback item. New items start in the pending status.
func (s *FeedbackService) Submit(ctx context.Context, req model.SubmitFeedbackRequest) (*model.Feedback, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	fb := &model.Feedback{
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
		UserRole:  req.UserRole,
		Subject:   req.Subject,
		Message:   req.Message,
		Category:  req.Category,
		Priority:  req.Priority,
		Rating:    req.Rating,
	}
	created, err := s.repo.Create(ctx, fb)
	if err != nil {
		return nil, fmt.Errorf("submit feedback: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "feedback submitted", "id", created.ID, "category", created.Category)
	}
	return created, nil
}

// GetByID retrieves a feedback item by its ID.
func (s *FeedbackService) GetByID(ctx context.Context, id string) (*model.Feedback, error) {
	fb, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get feedback by id: %w", err)
	}
	return fb, nil
}

// List returns feedback items matching the options.
func (s *FeedbackService) List(ctx context.Context, opts model.FeedbackListOptions) ([]*model.Feedback, error) {
	items, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return items, nil
}

// Respond records an admin response and advances the item's status.
func (s *FeedbackService) Respond(ctx context.Context, id string, req model.RespondFeedbackRequest) (*model.Feedback, error) {
	fb, err := s.repo.Respond(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("respond to feedback: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "feedback responded", "id", fb.ID, "status", fb.Status)
	}
	return fb, nil
}

// SetStatus changes a feedback item's triage status without responding.
func (s *FeedbackService) SetStatus(ctx context.Context, id string, status model.FeedbackStatus) (*model.Feedback, error) {
	fb, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("set feedback status: %w", err)
	}
	return fb, nil
}

// Delete removes a feedback item. It reports whether a record was removed.
func (s *FeedbackService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete feedback: %w", err)
	}
	return ok, nil
}
