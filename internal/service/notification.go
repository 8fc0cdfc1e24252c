package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tillflow/admin-api/internal/domain/model"
	apperrors "github.com/tillflow/admin-api/internal/errors"
	"github.com/tillflow/admin-api/internal/ports"
)

// NotificationServiceOptions groups dependencies for NotificationService.
type NotificationServiceOptions struct {
	Repo   ports.NotificationRepository // Required: notification repository
	Now    func() time.Time             // Optional: clock override for tests
	Logger *slog.Logger                 // Optional: structured logger
}

// NotificationService composes and dispatches platform notifications.
type NotificationService struct {
	repo   ports.NotificationRepository
	now    func() time.Time
	logger *slog.Logger
}

// NewNotificationService constructs a new NotificationService.
func NewNotificationService(opts NotificationServiceOptions) (*NotificationService, error) {
	if opts.Repo == nil {
		return nil, errors.New("NotificationRepository is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "notification_service")
	}

	return &NotificationService{repo: opts.Repo, now: now, logger: logger}, nil
}

// MustNewNotificationService constructs a new NotificationService and panics on error.
func MustNewNotificationService(opts NotificationServiceOptions) *NotificationService {
	svc, err := NewNotificationService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Compose validates and stores a notification. Depending on the request it
// starts out as a draft, a scheduled message, or an immediately sent one.
func (s *NotificationService) Compose(ctx context.Context, req model.ComposeNotificationRequest, sentBy string) (*model.Notification, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if req.ScheduledFor != nil && req.ScheduledFor.Before(s.now()) {
		return nil, apperrors.ValidationField("scheduledFor", "schedule must be in the future")
	}

	n := &model.Notification{
		Title:        req.Title,
		Message:      req.Message,
		Type:         req.Type,
		Priority:     req.Priority,
		Audience:     req.Audience,
		Status:       req.InitialStatus(),
		ScheduledFor: req.ScheduledFor,
		SentBy:       sentBy,
	}
	if n.Status == model.NotificationStatusSent {
		sentAt := s.now()
		n.SentAt = &sentAt
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("compose notification: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "notification composed",
			"id", created.ID, "status", created.Status, "audience", created.Audience)
	}
	return created, nil
}

// GetByID retrieves a notification by its ID.
func (s *NotificationService) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get notification by id: %w", err)
	}
	return n, nil
}

// List returns notifications matching the options.
func (s *NotificationService) List(ctx context.Context, opts model.NotificationListOptions) ([]*model.Notification, error) {
	notifications, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// Send dispatches a draft or scheduled notification now.
func (s *NotificationService) Send(ctx context.Context, id string, recipients int) (*model.Notification, error) {
	n, err := s.repo.MarkSent(ctx, id, recipients)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("notification not found or already sent")
		}
		return nil, fmt.Errorf("send notification: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "notification sent", "id", n.ID, "recipients", n.Recipients)
	}
	return n, nil
}

// DispatchDue sends every scheduled notification whose time has come. It
// returns the number dispatched and is intended to run on a ticker.
func (s *NotificationService) DispatchDue(ctx context.Context) (int, error) {
	scheduled := model.NotificationStatusScheduled
	due, err := s.repo.List(ctx, model.NotificationListOptions{
		Status: &scheduled,
		Sort:   "created_at",
		Dir:    "asc",
	})
	if err != nil {
		return 0, fmt.Errorf("list scheduled notifications: %w", err)
	}

	sent := 0
	now := s.now()
	for _, n := range due {
		if n.ScheduledFor == nil || n.ScheduledFor.After(now) {
			continue
		}
		if _, err := s.repo.MarkSent(ctx, n.ID, n.Recipients); err != nil {
			if s.logger != nil {
				s.logger.ErrorContext(ctx, "failed to dispatch scheduled notification",
					"id", n.ID, "error", err)
			}
			continue
		}
		sent++
	}
	return sent, nil
}

// Delete removes a notification. It reports whether a record was removed.
func (s *NotificationService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete notification: %w", err)
	}
	return ok, nil
}
