//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/tillflow/admin-api/internal/domain/auth"
)

// FeedbackCategory classifies a piece of user feedback.
type FeedbackCategory string

const (
	FeedbackCategoryBug         FeedbackCategory = "bug"
	FeedbackCategoryFeature     FeedbackCategory = "feature"
	FeedbackCategoryImprovement FeedbackCategory = "improvement"
	FeedbackCategoryQuestion    FeedbackCategory = "question"
	FeedbackCategoryOther       FeedbackCategory = "other"
)

// Valid reports whether the category is supported.
func (c FeedbackCategory) Valid() bool {
	switch c {
	case FeedbackCategoryBug, FeedbackCategoryFeature, FeedbackCategoryImprovement,
		FeedbackCategoryQuestion, FeedbackCategoryOther:
		return true
	default:
		return false
	}
}

// FeedbackStatus is the triage lifecycle of a feedback item.
type FeedbackStatus string

const (
	FeedbackStatusPending  FeedbackStatus = "pending"
	FeedbackStatusReviewed FeedbackStatus = "reviewed"
	FeedbackStatusResolved FeedbackStatus = "resolved"
	FeedbackStatusClosed   FeedbackStatus = "closed"
)

// Valid reports whether the status is supported.
func (s FeedbackStatus) Valid() bool {
	switch s {
	case FeedbackStatusPending, FeedbackStatusReviewed, FeedbackStatusResolved, FeedbackStatusClosed:
		return true
	default:
		return false
	}
}

// ParseFeedbackStatus normalizes a status string and reports whether it is supported.
func ParseFeedbackStatus(value string) (FeedbackStatus, bool) {
	status := FeedbackStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// Feedback is a user-submitted report with optional admin response.
type Feedback struct {
	ID          string           `json:"id"                    db:"id"`
	UserName    string           `json:"userName"              db:"user_name"`
	UserEmail   string           `json:"userEmail"             db:"user_email"`
	UserRole    auth.Role        `json:"userRole"              db:"user_role"`
	Subject     string           `json:"subject"               db:"subject"`
	Message     string           `json:"message"               db:"message"`
	Category    FeedbackCategory `json:"category"              db:"category"`
	Priority    string           `json:"priority"              db:"priority"`
	Status      FeedbackStatus   `json:"status"                db:"status"`
	Rating      *int             `json:"rating,omitempty"      db:"rating"`
	Response    *string          `json:"response,omitempty"    db:"response"`
	SubmittedAt time.Time        `json:"submittedAt"           db:"submitted_at"`
	RespondedAt *time.Time       `json:"respondedAt,omitempty" db:"responded_at"`
}

// FeedbackListOptions controls paging and filtering for listing feedback.
type FeedbackListOptions struct {
	Limit    int
	Offset   int
	Q        *string // substring match on subject, message, submitter (ILIKE)
	Category *FeedbackCategory
	Status   *FeedbackStatus
	Sort     string // allowed: "submitted_at", "priority"
	Dir      string
}

// SubmitFeedbackRequest carries a new feedback item.
type SubmitFeedbackRequest struct {
	UserName  string           `json:"userName"`
	UserEmail string           `json:"userEmail"`
	UserRole  auth.Role        `json:"userRole"`
	Subject   string           `json:"subject"`
	Message   string           `json:"message"`
	Category  FeedbackCategory `json:"category"`
	Priority  string           `json:"priority,omitempty"`
	Rating    *int             `json:"rating,omitempty"`
}

// RespondFeedbackRequest carries an admin response to a feedback item.
type RespondFeedbackRequest struct {
	Response string         `json:"response"`
	Status   FeedbackStatus `json:"status,omitempty"`
}

// Validate validates SubmitFeedbackRequest.
func (r *SubmitFeedbackRequest) Validate() error {
	if strings.TrimSpace(r.Subject) == "" {
		return errors.New("subject is required and cannot be empty")
	}
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("message is required and cannot be empty")
	}
	if !r.Category.Valid() {
		return errors.New("category must be one of: bug, feature, improvement, question, other")
	}
	if r.Priority == "" {
		r.Priority = "medium"
	}
	if r.Rating != nil && (*r.Rating < 1 || *r.Rating > 5) {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

// Validate validates RespondFeedbackRequest.
func (r *RespondFeedbackRequest) Validate() error {
	if strings.TrimSpace(r.Response) == "" {
		return errors.New("response is required and cannot be empty")
	}
	if r.Status == "" {
		r.Status = FeedbackStatusReviewed
	}
	if !r.Status.Valid() {
		return errors.New("status must be one of: pending, reviewed, resolved, closed")
	}
	return nil
}
