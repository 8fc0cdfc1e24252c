//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxBusinessNameLen = 255

// BusinessStatus is the lifecycle of a registered business.
type BusinessStatus string

const (
	BusinessStatusActive   BusinessStatus = "active"
	BusinessStatusInactive BusinessStatus = "inactive"
)

// Valid reports whether the status is supported.
func (s BusinessStatus) Valid() bool {
	switch s {
	case BusinessStatusActive, BusinessStatusInactive:
		return true
	default:
		return false
	}
}

// ParseBusinessStatus normalizes a status string and reports whether it is supported.
func ParseBusinessStatus(value string) (BusinessStatus, bool) {
	status := BusinessStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// Merchant is the owning account embedded in a business record.
type Merchant struct {
	ID    string `json:"id"    db:"merchant_id"`
	Name  string `json:"name"  db:"merchant_name"`
	Email string `json:"email" db:"merchant_email"`
}

// Business represents a merchant business registered on the platform.
type Business struct {
	ID           string         `json:"id"                    db:"id"`
	Name         string         `json:"name"                  db:"name"`
	Type         string         `json:"type"                  db:"type"`
	Merchant     Merchant       `json:"merchant"`
	Status       BusinessStatus `json:"status"                db:"status"`
	Location     string         `json:"location"              db:"location"`
	Phone        string         `json:"phone"                 db:"phone"`
	Email        string         `json:"email"                 db:"email"`
	Description  string         `json:"description,omitempty" db:"description"`
	Revenue      int64          `json:"revenue"               db:"revenue"`
	Transactions int64          `json:"transactions"          db:"transactions"`
	RegisteredAt time.Time      `json:"registeredAt"          db:"registered_at"`
	UpdatedAt    time.Time      `json:"updatedAt"             db:"updated_at"`
}

// BusinessListOptions controls paging and filtering for listing businesses.
// Q matches name, merchant name, and location via ILIKE substring; Status and
// Type match exactly. Sort supports "registered_at", "name", "revenue".
type BusinessListOptions struct {
	Limit  int
	Offset int
	Q      *string
	Status *BusinessStatus
	Type   *string
	Sort   string
	Dir    string
}

// BusinessStats are the aggregate counts shown above the businesses table.
type BusinessStats struct {
	Total        int   `json:"total"`
	Active       int   `json:"active"`
	Inactive     int   `json:"inactive"`
	TotalRevenue int64 `json:"totalRevenue"`
}

// CreateBusinessRequest represents parameters to register a Business.
type CreateBusinessRequest struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Merchant    Merchant       `json:"merchant"`
	Status      BusinessStatus `json:"status,omitempty"`
	Location    string         `json:"location"`
	Phone       string         `json:"phone"`
	Email       string         `json:"email"`
	Description string         `json:"description,omitempty"`
}

// UpdateBusinessRequest represents parameters to update a Business.
type UpdateBusinessRequest struct {
	Name        *string         `json:"name,omitempty"`
	Type        *string         `json:"type,omitempty"`
	Status      *BusinessStatus `json:"status,omitempty"`
	Location    *string         `json:"location,omitempty"`
	Phone       *string         `json:"phone,omitempty"`
	Email       *string         `json:"email,omitempty"`
	Description *string         `json:"description,omitempty"`
}

// Validate validates CreateBusinessRequest.
func (r *CreateBusinessRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxBusinessNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Type) == "" {
		return errors.New("type is required")
	}
	if strings.TrimSpace(r.Merchant.ID) == "" {
		return errors.New("merchant id is required")
	}
	if r.Status == "" {
		r.Status = BusinessStatusActive
	}
	if !r.Status.Valid() {
		return errors.New("status must be one of: active, inactive")
	}
	return nil
}

// Validate validates UpdateBusinessRequest.
func (r *UpdateBusinessRequest) Validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(name) > maxBusinessNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("status must be one of: active, inactive")
	}
	return nil
}
