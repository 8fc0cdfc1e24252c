package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
	"github.com/tillflow/admin-api/internal/domain/model"
	"github.com/tillflow/admin-api/internal/ports"
)

// DirectoryServiceOptions groups dependencies for DirectoryService.
type DirectoryServiceOptions struct {
	Directory ports.DirectoryGateway // Required: backend user directory
	Profiles  ports.ProfileGateway   // Required: backend profile surface
	Logger    *slog.Logger           // Optional: structured logger
}

// DirectoryService proxies the backend's admin user directory and profile
// operations. Every call carries the signed-in admin's bearer token; the
// backend is the authority on who may do what.
type DirectoryService struct {
	directory ports.DirectoryGateway
	profiles  ports.ProfileGateway
	logger    *slog.Logger
}

// NewDirectoryService constructs a new DirectoryService.
func NewDirectoryService(opts DirectoryServiceOptions) (*DirectoryService, error) {
	if opts.Directory == nil {
		return nil, errors.New("DirectoryGateway is required")
	}
	if opts.Profiles == nil {
		return nil, errors.New("ProfileGateway is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "directory_service")
	}

	return &DirectoryService{directory: opts.Directory, profiles: opts.Profiles, logger: logger}, nil
}

// MustNewDirectoryService constructs a new DirectoryService and panics on error.
func MustNewDirectoryService(opts DirectoryServiceOptions) *DirectoryService {
	svc, err := NewDirectoryService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// ListUsers returns all admin accounts visible to the caller.
func (s *DirectoryService) ListUsers(ctx context.Context, token string) ([]model.DirectoryUser, error) {
	users, err := s.directory.ListUsers(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UserStats returns aggregate account counts.
func (s *DirectoryService) UserStats(ctx context.Context, token string) (model.UserStats, error) {
	stats, err := s.directory.UserStats(ctx, token)
	if err != nil {
		return model.UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	return stats, nil
}

// GetUser returns a single directory account.
func (s *DirectoryService) GetUser(ctx context.Context, token, id string) (*model.DirectoryUser, error) {
	user, err := s.directory.GetUser(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateUserRole changes a directory account's role.
func (s *DirectoryService) UpdateUserRole(ctx context.Context, token, id string, role domainauth.Role) error {
	if !role.Valid() {
		return fmt.Errorf("update user role: unknown role %q", role)
	}
	if err := s.directory.UpdateUserRole(ctx, token, id, role); err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "user role updated", "id", id, "role", role)
	}
	return nil
}

// DeleteUser removes a directory account.
func (s *DirectoryService) DeleteUser(ctx context.Context, token, id string) error {
	if err := s.directory.DeleteUser(ctx, token, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "user deleted", "id", id)
	}
	return nil
}

// GetProfile returns the signed-in admin's profile.
func (s *DirectoryService) GetProfile(ctx context.Context, token string) (*model.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// UpdateProfile modifies the signed-in admin's profile.
func (s *DirectoryService) UpdateProfile(ctx context.Context, token string, req model.UpdateProfileRequest) (*model.Profile, error) {
	p, err := s.profiles.UpdateProfile(ctx, token, req)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// ChangePassword changes the signed-in admin's password.
func (s *DirectoryService) ChangePassword(ctx context.Context, token string, req model.ChangePasswordRequest) error {
	if err := s.profiles.ChangePassword(ctx, token, req); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
