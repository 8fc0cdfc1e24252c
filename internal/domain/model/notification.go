//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// NotificationType categorizes a platform notification.
type NotificationType string

const (
	NotificationTypeMaintenance  NotificationType = "maintenance"
	NotificationTypeAnnouncement NotificationType = "announcement"
	NotificationTypeAlert        NotificationType = "alert"
	NotificationTypeInfo         NotificationType = "info"
)

// Valid reports whether the notification type is supported.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeMaintenance, NotificationTypeAnnouncement, NotificationTypeAlert, NotificationTypeInfo:
		return true
	default:
		return false
	}
}

// NotificationPriority ranks delivery urgency.
type NotificationPriority string

const (
	NotificationPriorityLow      NotificationPriority = "low"
	NotificationPriorityMedium   NotificationPriority = "medium"
	NotificationPriorityHigh     NotificationPriority = "high"
	NotificationPriorityCritical NotificationPriority = "critical"
)

// Valid reports whether the priority is supported.
func (p NotificationPriority) Valid() bool {
	switch p {
	case NotificationPriorityLow, NotificationPriorityMedium, NotificationPriorityHigh, NotificationPriorityCritical:
		return true
	default:
		return false
	}
}

// NotificationAudience selects who receives a notification.
type NotificationAudience string

const (
	AudienceAll       NotificationAudience = "all"
	AudienceMerchants NotificationAudience = "merchants"
	AudienceAdmins    NotificationAudience = "admins"
)

// Valid reports whether the audience is supported.
func (a NotificationAudience) Valid() bool {
	switch a {
	case AudienceAll, AudienceMerchants, AudienceAdmins:
		return true
	default:
		return false
	}
}

// NotificationStatus is the delivery lifecycle.
type NotificationStatus string

const (
	NotificationStatusDraft     NotificationStatus = "draft"
	NotificationStatusScheduled NotificationStatus = "scheduled"
	NotificationStatusSent      NotificationStatus = "sent"
)

// Valid reports whether the status is supported.
func (s NotificationStatus) Valid() bool {
	switch s {
	case NotificationStatusDraft, NotificationStatusScheduled, NotificationStatusSent:
		return true
	default:
		return false
	}
}

// Notification is a platform-wide message composed by an admin.
type Notification struct {
	ID           string               `json:"id"                     db:"id"`
	Title        string               `json:"title"                  db:"title"`
	Message      string               `json:"message"                db:"message"`
	Type         NotificationType     `json:"type"                   db:"type"`
	Priority     NotificationPriority `json:"priority"               db:"priority"`
	Audience     NotificationAudience `json:"targetAudience"         db:"audience"`
	Status       NotificationStatus   `json:"status"                 db:"status"`
	ScheduledFor *time.Time           `json:"scheduledFor,omitempty" db:"scheduled_for"`
	SentAt       *time.Time           `json:"sentAt,omitempty"       db:"sent_at"`
	SentBy       string               `json:"sentBy"                 db:"sent_by"`
	Recipients   int                  `json:"recipients"             db:"recipients"`
	ReadCount    int                  `json:"readCount"              db:"read_count"`
	CreatedAt    time.Time            `json:"createdAt"              db:"created_at"`
	UpdatedAt    time.Time            `json:"updatedAt"              db:"updated_at"`
}

// NotificationListOptions controls paging and filtering for listing notifications.
type NotificationListOptions struct {
	Limit    int
	Offset   int
	Q        *string // substring match on title and message (ILIKE)
	Type     *NotificationType
	Status   *NotificationStatus
	Audience *NotificationAudience
	Sort     string // allowed: "created_at", "sent_at", "priority"
	Dir      string
}

// ComposeNotificationRequest carries a new notification. A zero ScheduledFor
// means the message is either sent immediately or kept as a draft.
type ComposeNotificationRequest struct {
	Title        string               `json:"title"`
	Message      string               `json:"message"`
	Type         NotificationType     `json:"type"`
	Priority     NotificationPriority `json:"priority"`
	Audience     NotificationAudience `json:"targetAudience"`
	Draft        bool                 `json:"draft,omitempty"`
	ScheduledFor *time.Time           `json:"scheduledFor,omitempty"`
}

// Validate validates ComposeNotificationRequest.
func (r *ComposeNotificationRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required and cannot be empty")
	}
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("message is required and cannot be empty")
	}
	if !r.Type.Valid() {
		return errors.New("type must be one of: maintenance, announcement, alert, info")
	}
	if r.Priority == "" {
		r.Priority = NotificationPriorityMedium
	}
	if !r.Priority.Valid() {
		return errors.New("priority must be one of: low, medium, high, critical")
	}
	if r.Audience == "" {
		r.Audience = AudienceAll
	}
	if !r.Audience.Valid() {
		return errors.New("targetAudience must be one of: all, merchants, admins")
	}
	if r.Draft && r.ScheduledFor != nil {
		return errors.New("a draft cannot carry a schedule")
	}
	return nil
}

// InitialStatus derives the lifecycle state a composed notification starts in.
func (r *ComposeNotificationRequest) InitialStatus() NotificationStatus {
	switch {
	case r.Draft:
		return NotificationStatusDraft
	case r.ScheduledFor != nil:
		return NotificationStatusScheduled
	default:
		return NotificationStatusSent
	}
}
