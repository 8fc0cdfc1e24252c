package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
	"github.com/tillflow/admin-api/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions      *Sessions
	LoginGateway  LoginGateway
	Directory     *service.DirectoryService
	Overview      *service.OverviewService
	Businesses    *service.BusinessService
	Tokens        *service.TokenService
	Notifications *service.NotificationService
	Feedback      *service.FeedbackService
	Currencies    *service.CurrencyService
	Logger        *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures the admin API router. Every /api route
// except the auth lifecycle and health checks requires an authenticated
// admin session.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	adminOnly := func(hh http.Handler) http.Handler {
		return RequireRole(services.Sessions, domainauth.RoleAdmin)(hh)
	}

	authHandlers := &AuthHandlers{
		Sessions: services.Sessions,
		Gateway:  services.LoginGateway,
		Logger:   services.Logger,
	}
	registerAuthRoutes(mux, authHandlers)

	authed := RequireAuth(services.Sessions)
	registerUserRoutes(mux, &UserHandlers{Svc: services.Directory, Sessions: services.Sessions}, adminOnly, authed)

	businessHandlers := &BusinessHandlers{Svc: services.Businesses}
	mux.Handle("GET /api/businesses/stats", adminOnly(http.HandlerFunc(businessHandlers.Stats)))
	registerCRUD(mux, crudRoutes{
		Base:       "/api/businesses",
		Create:     businessHandlers.Create,
		List:       businessHandlers.List,
		GetByID:    businessHandlers.GetByID,
		Update:     businessHandlers.Update,
		Delete:     businessHandlers.Delete,
		Middleware: adminOnly,
	})

	tokenHandlers := &TokenHandlers{Svc: services.Tokens}
	registerCRUD(mux, crudRoutes{
		Base:       "/api/tokens",
		Create:     tokenHandlers.Create,
		List:       tokenHandlers.List,
		GetByID:    tokenHandlers.GetByID,
		Update:     tokenHandlers.Update,
		Delete:     tokenHandlers.Delete,
		Middleware: adminOnly,
	})

	registerNotificationRoutes(mux, &NotificationHandlers{Svc: services.Notifications}, adminOnly)
	registerFeedbackRoutes(mux, &FeedbackHandlers{Svc: services.Feedback}, adminOnly)
	registerCurrencyRoutes(mux, &CurrencyHandlers{Svc: services.Currencies}, adminOnly)

	mux.Handle("GET /api/overview", adminOnly(http.HandlerFunc(
		(&OverviewHandlers{Svc: services.Overview, Sessions: services.Sessions}).Get)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("POST /api/auth/reset-password", h.ResetPassword)
	mux.HandleFunc("GET /api/auth/status", h.Status)
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, adminOnly, authed func(http.Handler) http.Handler) {
	mux.Handle("GET /api/users", adminOnly(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/users/stats", adminOnly(http.HandlerFunc(h.Stats)))
	mux.Handle("GET /api/users/{id}", adminOnly(http.HandlerFunc(h.GetByID)))
	mux.Handle("PUT /api/users/{id}/role", adminOnly(http.HandlerFunc(h.UpdateRole)))
	mux.Handle("DELETE /api/users/{id}", adminOnly(http.HandlerFunc(h.Delete)))

	// Any signed-in account may read and edit its own profile.
	mux.Handle("GET /api/profile", authed(http.HandlerFunc(h.Profile)))
	mux.Handle("PUT /api/profile", authed(http.HandlerFunc(h.UpdateProfile)))
	mux.Handle("POST /api/profile/password", authed(http.HandlerFunc(h.ChangePassword)))
}

func registerNotificationRoutes(mux *http.ServeMux, h *NotificationHandlers, mw func(http.Handler) http.Handler) {
	mux.Handle("POST /api/notifications", mw(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/notifications", mw(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/notifications/{id}", mw(http.HandlerFunc(h.GetByID)))
	mux.Handle("POST /api/notifications/{id}/send", mw(http.HandlerFunc(h.Send)))
	mux.Handle("DELETE /api/notifications/{id}", mw(http.HandlerFunc(h.Delete)))
}

func registerFeedbackRoutes(mux *http.ServeMux, h *FeedbackHandlers, mw func(http.Handler) http.Handler) {
	mux.Handle("POST /api/feedback", mw(http.HandlerFunc(h.Submit)))
	mux.Handle("GET /api/feedback", mw(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/feedback/{id}", mw(http.HandlerFunc(h.GetByID)))
	mux.Handle("POST /api/feedback/{id}/respond", mw(http.HandlerFunc(h.Respond)))
	mux.Handle("PUT /api/feedback/{id}/status", mw(http.HandlerFunc(h.SetStatus)))
	mux.Handle("DELETE /api/feedback/{id}", mw(http.HandlerFunc(h.Delete)))
}

func registerCurrencyRoutes(mux *http.ServeMux, h *CurrencyHandlers, mw func(http.Handler) http.Handler) {
	mux.Handle("POST /api/currencies", mw(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/currencies", mw(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/currencies/{id}", mw(http.HandlerFunc(h.GetByID)))
	mux.Handle("PUT /api/currencies/{id}", mw(http.HandlerFunc(h.Update)))
	mux.Handle("PUT /api/currencies/{id}/default", mw(http.HandlerFunc(h.SetDefault)))
	mux.Handle("DELETE /api/currencies/{id}", mw(http.HandlerFunc(h.Delete)))
}

// crudRoutes describes the standard CRUD surface for a resource base path.
type crudRoutes struct {
	Base       string
	Create     http.HandlerFunc
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Middleware != nil {
			return cfg.Middleware(h)
		}
		return h
	}
	mux.Handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.Handle("GET "+cfg.Base, wrap(cfg.List))
	mux.Handle("GET "+cfg.Base+"/{id}", wrap(cfg.GetByID))
	mux.Handle("PUT "+cfg.Base+"/{id}", wrap(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", wrap(cfg.Delete))
}
