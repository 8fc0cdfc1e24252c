//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeNotificationRequest_Validate(t *testing.T) {
	t.Parallel()

	schedule := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     ComposeNotificationRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			req: ComposeNotificationRequest{
				Title:    "Scheduled maintenance",
				Message:  "The platform will be unavailable Saturday night.",
				Type:     NotificationTypeMaintenance,
				Priority: NotificationPriorityHigh,
				Audience: AudienceMerchants,
			},
			wantErr: false,
		},
		{
			name: "empty title",
			req: ComposeNotificationRequest{
				Title:   "  ",
				Message: "body",
				Type:    NotificationTypeInfo,
			},
			wantErr: true,
			errMsg:  "title is required and cannot be empty",
		},
		{
			name: "empty message",
			req: ComposeNotificationRequest{
				Title: "Heads up",
				Type:  NotificationTypeInfo,
			},
			wantErr: true,
			errMsg:  "message is required and cannot be empty",
		},
		{
			name: "unknown type",
			req: ComposeNotificationRequest{
				Title:   "Heads up",
				Message: "body",
				Type:    NotificationType("promo"),
			},
			wantErr: true,
			errMsg:  "type must be one of",
		},
		{
			name: "unknown audience",
			req: ComposeNotificationRequest{
				Title:    "Heads up",
				Message:  "body",
				Type:     NotificationTypeInfo,
				Audience: NotificationAudience("everyone"),
			},
			wantErr: true,
			errMsg:  "targetAudience must be one of",
		},
		{
			name: "draft cannot carry a schedule",
			req: ComposeNotificationRequest{
				Title:        "Heads up",
				Message:      "body",
				Type:         NotificationTypeInfo,
				Draft:        true,
				ScheduledFor: &schedule,
			},
			wantErr: true,
			errMsg:  "a draft cannot carry a schedule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestComposeNotificationRequest_ValidateDefaults(t *testing.T) {
	t.Parallel()

	req := ComposeNotificationRequest{
		Title:   "Heads up",
		Message: "body",
		Type:    NotificationTypeAnnouncement,
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, NotificationPriorityMedium, req.Priority)
	assert.Equal(t, AudienceAll, req.Audience)
}

func TestComposeNotificationRequest_InitialStatus(t *testing.T) {
	t.Parallel()

	schedule := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, NotificationStatusDraft,
		(&ComposeNotificationRequest{Draft: true}).InitialStatus())
	assert.Equal(t, NotificationStatusScheduled,
		(&ComposeNotificationRequest{ScheduledFor: &schedule}).InitialStatus())
	assert.Equal(t, NotificationStatusSent,
		(&ComposeNotificationRequest{}).InitialStatus())
}
