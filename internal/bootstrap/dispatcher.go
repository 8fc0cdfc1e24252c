package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/tillflow/admin-api/config"
	"github.com/tillflow/admin-api/internal/service"
)

// DispatcherConfig contains dependencies for the notification dispatcher loop.
type DispatcherConfig struct {
	Config        config.DispatcherConfig
	Notifications *service.NotificationService
	Logger        *slog.Logger
}

// RunDispatcher sends due scheduled notifications on a fixed interval until
// the context is canceled. Failures are logged and the loop keeps ticking.
func RunDispatcher(ctx context.Context, cfg DispatcherConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.Config.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	logger.Info("starting notification dispatcher", "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification dispatcher stopped")
			return
		case <-ticker.C:
			sent, err := cfg.Notifications.DispatchDue(ctx)
			if err != nil {
				logger.Error("dispatch due notifications", "error", err)
				continue
			}
			if sent > 0 {
				logger.Info("dispatched scheduled notifications", "count", sent)
			}
		}
	}
}
