package dto

import (
	"time"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
)

// NotificationResponse is the API shape of an in-app notification.
type NotificationResponse struct {
	NotificationID string                  `json:"notificationID"`
	RequestID      *string                 `json:"requestID,omitempty"`
	Kind           domain.NotificationKind `json:"kind"`
	Message        string                  `json:"message"`
	Link           string                  `json:"link"`
	IsRead         bool                    `json:"isRead"`
	SentAt         time.Time               `json:"sentAt"`
}

// ToNotificationResponses converts a slice of notifications to their API shape.
func ToNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = NotificationResponse{
			NotificationID: n.NotificationID,
			RequestID:      n.RequestID,
			Kind:           n.Kind,
			Message:        n.Message,
			Link:           n.Link,
			IsRead:         n.IsRead,
			SentAt:         n.SentAt,
		}
	}
	return responses
}

// HistoryEntryResponse is one audit-trail entry in API responses.
type HistoryEntryResponse struct {
	HistoryID string    `json:"historyID"`
	RequestID string    `json:"requestID"`
	UserID    string    `json:"userID"`
	Action    string    `json:"action"`
	Details   *string   `json:"details,omitempty"`
	EventDate time.Time `json:"eventDate"`
}

// ToHistoryEntryResponses converts audit-trail entries to their API shape.
func ToHistoryEntryResponses(entries []domain.RequestHistory) []HistoryEntryResponse {
	responses := make([]HistoryEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = HistoryEntryResponse{
			HistoryID: e.HistoryID,
			RequestID: e.RequestID,
			UserID:    e.UserID,
			Action:    e.Action,
			Details:   e.Details,
			EventDate: e.EventDate,
		}
	}
	return responses
}
