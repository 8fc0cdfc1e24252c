package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tillflow/admin-api/internal/domain/model"
	"github.com/tillflow/admin-api/internal/ports"
)

// Overview is the dashboard snapshot assembled from the backend directory and
// the local stores.
type Overview struct {
	Users               model.UserStats       `json:"users"`
	Businesses          model.BusinessStats   `json:"businesses"`
	PendingFeedback     int                   `json:"pendingFeedback"`
	RecentNotifications []*model.Notification `json:"recentNotifications"`
}

// OverviewServiceOptions groups dependencies for OverviewService.
type OverviewServiceOptions struct {
	Directory     ports.DirectoryGateway       // Required: backend user directory
	Businesses    ports.BusinessRepository     // Required: business repository
	Notifications ports.NotificationRepository // Required: notification repository
	Feedback      ports.FeedbackRepository     // Required: feedback repository
	Logger        *slog.Logger                 // Optional: structured logger
}

// OverviewService assembles the dashboard overview. The four sources are
// independent, so they are fetched concurrently and the first failure wins.
type OverviewService struct {
	directory     ports.DirectoryGateway
	businesses    ports.BusinessRepository
	notifications ports.NotificationRepository
	feedback      ports.FeedbackRepository
	logger        *slog.Logger
}

// NewOverviewService constructs a new OverviewService.
func NewOverviewService(opts OverviewServiceOptions) (*OverviewService, error) {
	if opts.Directory == nil {
		return nil, errors.New("DirectoryGateway is required")
	}
	if opts.Businesses == nil {
		return nil, errors.New("BusinessRepository is required")
	}
	if opts.Notifications == nil {
		return nil, errors.New("NotificationRepository is required")
	}
	if opts.Feedback == nil {
		return nil, errors.New("FeedbackRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "overview_service")
	}

	return &OverviewService{
		directory:     opts.Directory,
		businesses:    opts.Businesses,
		notifications: opts.Notifications,
		feedback:      opts.Feedback,
		logger:        logger,
	}, nil
}

// MustNewOverviewService constructs a new OverviewService and panics on error.
func MustNewOverviewService(opts OverviewServiceOptions) *OverviewService {
	svc, err := NewOverviewService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

const recentNotificationLimit = 5

// Snapshot builds the dashboard overview for the caller identified by token.
func (s *OverviewService) Snapshot(ctx context.Context, token string) (*Overview, error) {
	var out Overview

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.directory.UserStats(gctx, token)
		if err != nil {
			return fmt.Errorf("user stats: %w", err)
		}
		out.Users = stats
		return nil
	})

	g.Go(func() error {
		stats, err := s.businesses.Stats(gctx)
		if err != nil {
			return fmt.Errorf("business stats: %w", err)
		}
		out.Businesses = stats
		return nil
	})

	g.Go(func() error {
		sent := model.NotificationStatusSent
		items, err := s.notifications.List(gctx, model.NotificationListOptions{
			Limit:  recentNotificationLimit,
			Status: &sent,
			Sort:   "created_at",
			Dir:    "desc",
		})
		if err != nil {
			return fmt.Errorf("recent notifications: %w", err)
		}
		out.RecentNotifications = items
		return nil
	})

	g.Go(func() error {
		pending := model.FeedbackStatusPending
		items, err := s.feedback.List(gctx, model.FeedbackListOptions{Status: &pending})
		if err != nil {
			return fmt.Errorf("pending feedback: %w", err)
		}
		out.PendingFeedback = len(items)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("overview snapshot: %w", err)
	}
	if out.RecentNotifications == nil {
		out.RecentNotifications = []*model.Notification{}
	}
	return &out, nil
}
