package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/tillflow/admin-api/config"
	redisadapter "github.com/tillflow/admin-api/internal/adapters/redis"
	"github.com/tillflow/admin-api/internal/backend"
	"github.com/tillflow/admin-api/internal/data"
	httpx "github.com/tillflow/admin-api/internal/http"
	"github.com/tillflow/admin-api/internal/ports"
	"github.com/tillflow/admin-api/internal/service"
)

// ServiceContainer holds all initialized services and shared clients.
type ServiceContainer struct {
	Backend       *backend.Client
	Sessions      *httpx.Sessions
	Directory     *service.DirectoryService
	Overview      *service.OverviewService
	Businesses    *service.BusinessService
	Tokens        *service.TokenService
	Notifications *service.NotificationService
	Feedback      *service.FeedbackService
	Currencies    *service.CurrencyService
}

// ServicesConfig contains dependencies for building the service container.
type ServicesConfig struct {
	Config *config.AppConfig
	DB     *sql.DB
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// BuildServices constructs the full service container.
func BuildServices(cfg ServicesConfig) (*ServiceContainer, error) {
	if cfg.Config == nil {
		return nil, fmt.Errorf("app config is required")
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.Config.Backend.BaseURL,
		Timeout: cfg.Config.Backend.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build backend client: %w", err)
	}

	sessions, err := httpx.NewSessions(httpx.SessionsOptions{
		Repos:        SessionRepoFactory(cfg.Redis, cfg.Config.Session),
		Backend:      client,
		CookieDomain: cfg.Config.HTTP.CookieDomain,
	})
	if err != nil {
		return nil, fmt.Errorf("build session registry: %w", err)
	}

	clock := &data.RealTimeProvider{}
	businessRepo := data.NewBusinessRepo(cfg.DB)
	tokenRepo := data.NewTokenRepo(cfg.DB, clock)
	notificationRepo := data.NewNotificationRepo(cfg.DB, clock)
	feedbackRepo := data.NewFeedbackRepo(cfg.DB, clock)
	currencyRepo := data.NewCurrencyRepo(cfg.DB)

	directory, err := service.NewDirectoryService(service.DirectoryServiceOptions{
		Directory: client,
		Profiles:  client,
		Logger:    cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build directory service: %w", err)
	}

	businesses, err := service.NewBusinessService(service.BusinessServiceOptions{Repo: businessRepo, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("build business service: %w", err)
	}

	tokens, err := service.NewTokenService(service.TokenServiceOptions{Repo: tokenRepo, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("build token service: %w", err)
	}

	notifications, err := service.NewNotificationService(service.NotificationServiceOptions{Repo: notificationRepo, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("build notification service: %w", err)
	}

	feedback, err := service.NewFeedbackService(service.FeedbackServiceOptions{Repo: feedbackRepo, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("build feedback service: %w", err)
	}

	currencies, err := service.NewCurrencyService(service.CurrencyServiceOptions{Repo: currencyRepo, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("build currency service: %w", err)
	}

	overview, err := service.NewOverviewService(service.OverviewServiceOptions{
		Directory:     client,
		Businesses:    businessRepo,
		Notifications: notificationRepo,
		Feedback:      feedbackRepo,
		Logger:        cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build overview service: %w", err)
	}

	return &ServiceContainer{
		Backend:       client,
		Sessions:      sessions,
		Directory:     directory,
		Overview:      overview,
		Businesses:    businesses,
		Tokens:        tokens,
		Notifications: notifications,
		Feedback:      feedback,
		Currencies:    currencies,
	}, nil
}

// SessionRepoFactory builds the per-scope Redis session repository factory.
func SessionRepoFactory(client redis.UniversalClient, cfg config.SessionConfig) httpx.RepoFactory {
	return func(scope string) (ports.SessionRepository, error) {
		return redisadapter.NewSessionRepo(client, redisadapter.SessionRepoOptions{
			Scope: scope,
			TTL:   cfg.TTL,
		})
	}
}
