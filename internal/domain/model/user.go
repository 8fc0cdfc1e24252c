//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"time"

	"github.com/tillflow/admin-api/internal/domain/auth"
)

// DirectoryUser is a platform account as reported by the backend's admin
// directory endpoints. Field tags follow the backend's wire contract
// (Mongo-style "_id", camelCase).
type DirectoryUser struct {
	ID               string             `json:"_id"`
	Email            string             `json:"email"`
	FullName         string             `json:"fullName"`
	Role             auth.Role          `json:"role"`
	Verified         bool               `json:"verified"`
	ProfileCompleted bool               `json:"profileCompleted"`
	PhoneNumber      string             `json:"phoneNumber,omitempty"`
	LastLogin        *time.Time         `json:"lastLogin,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	Businesses       []DirectoryCompany `json:"businesses,omitempty"`
}

// DirectoryCompany is the business summary embedded in a directory user.
type DirectoryCompany struct {
	ID             string `json:"_id"`
	BusinessName   string `json:"businessName"`
	MpesaShortCode string `json:"mpesaShortCode"`
	BusinessType   string `json:"businessType"`
	IsActive       bool   `json:"isActive"`
}

// UserStats are the aggregate counts shown on the users dashboard.
type UserStats struct {
	TotalUsers    int `json:"totalUsers"`
	ActiveUsers   int `json:"activeUsers"`
	Merchants     int `json:"merchants"`
	Admins        int `json:"admins"`
	VerifiedUsers int `json:"verifiedUsers"`
}

// Profile is the editable profile of the signed-in account.
type Profile struct {
	ID          string    `json:"_id"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Role        auth.Role `json:"role"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UpdateProfileRequest carries the profile fields an account may change.
type UpdateProfileRequest struct {
	FullName    *string `json:"fullName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// ChangePasswordRequest carries a password rotation for the signed-in account.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
