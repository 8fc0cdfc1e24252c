// Package ports defines interfaces (hexagonal ports) for session and data
// behavior. Implementations live in internal/adapters and internal/data;
// orchestration in internal/session and internal/service.
package ports

import (
	"context"

	"github.com/tillflow/admin-api/internal/backend"
	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
	"github.com/tillflow/admin-api/internal/domain/model"
)

// SessionRepository persists the single session record for one client scope
// under a fixed namespaced key. Save and Clear are called synchronously with
// every in-memory mutation of the session store.
type SessionRepository interface {
	Save(ctx context.Context, sess domainauth.Session) error
	// Load returns the persisted record; ok is false when none exists.
	Load(ctx context.Context) (sess domainauth.Session, ok bool, err error)
	Clear(ctx context.Context) error
}

// AuthGateway is the slice of the backend client the session store needs.
type AuthGateway interface {
	RegisterAdmin(ctx context.Context, in backend.RegisterAdminInput) (backend.AuthResult, error)
	ResetPassword(ctx context.Context, email string) error
}

// DirectoryGateway is the backend's admin user directory surface.
type DirectoryGateway interface {
	ListUsers(ctx context.Context, token string) ([]model.DirectoryUser, error)
	UserStats(ctx context.Context, token string) (model.UserStats, error)
	GetUser(ctx context.Context, token, id string) (*model.DirectoryUser, error)
	UpdateUserRole(ctx context.Context, token, id string, role domainauth.Role) error
	DeleteUser(ctx context.Context, token, id string) error
}

// ProfileGateway is the backend's signed-in profile surface.
type ProfileGateway interface {
	GetProfile(ctx context.Context, token string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, token string, req model.UpdateProfileRequest) (*model.Profile, error)
	ChangePassword(ctx context.Context, token string, req model.ChangePasswordRequest) error
}

// BusinessRepository persists registered businesses.
type BusinessRepository interface {
	Create(ctx context.Context, req *model.CreateBusinessRequest) (*model.Business, error)
	GetByID(ctx context.Context, id string) (*model.Business, error)
	List(ctx context.Context, opts model.BusinessListOptions) ([]*model.Business, error)
	Update(ctx context.Context, id string, req model.UpdateBusinessRequest) (*model.Business, error)
	Delete(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (model.BusinessStats, error)
}

// TokenRepository persists issued platform tokens.
type TokenRepository interface {
	Create(ctx context.Context, tok *model.APIToken) (*model.APIToken, error)
	GetByID(ctx context.Context, id string) (*model.APIToken, error)
	List(ctx context.Context, opts model.TokenListOptions) ([]*model.APIToken, error)
	Update(ctx context.Context, id string, req model.UpdateTokenRequest) (*model.APIToken, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// NotificationRepository persists platform notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	List(ctx context.Context, opts model.NotificationListOptions) ([]*model.Notification, error)
	MarkSent(ctx context.Context, id string, recipients int) (*model.Notification, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// FeedbackRepository persists user feedback and admin responses.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *model.Feedback) (*model.Feedback, error)
	GetByID(ctx context.Context, id string) (*model.Feedback, error)
	List(ctx context.Context, opts model.FeedbackListOptions) ([]*model.Feedback, error)
	Respond(ctx context.Context, id string, req model.RespondFeedbackRequest) (*model.Feedback, error)
	SetStatus(ctx context.Context, id string, status model.FeedbackStatus) (*model.Feedback, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CurrencyRepository persists the supported currency configurations.
type CurrencyRepository interface {
	Create(ctx context.Context, req *model.CreateCurrencyRequest) (*model.Currency, error)
	GetByID(ctx context.Context, id string) (*model.Currency, error)
	List(ctx context.Context) ([]*model.Currency, error)
	Update(ctx context.Context, id string, req model.UpdateCurrencyRequest) (*model.Currency, error)
	SetDefault(ctx context.Context, id string) (*model.Currency, error)
	Delete(ctx context.Context, id string) (bool, error)
}
