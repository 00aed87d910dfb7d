package domain

import "time"

// NotificationKind classifies outbound notifications by the state change that caused them.
type NotificationKind string

const (
	NotifySubmissionPendingApproval NotificationKind = "SUBMISSION_PENDING_APPROVAL"
	NotifyStepAdvanced              NotificationKind = "STEP_ADVANCED"
	NotifyFinalApproved             NotificationKind = "FINAL_APPROVED"
	NotifyRejected                  NotificationKind = "REJECTED"
	NotifyReturnedForEdit           NotificationKind = "RETURNED_FOR_EDIT"
)

// Notification is an in-app notification persisted for a single recipient.
type Notification struct {
	NotificationID string           `json:"notificationID"` // Primary Key (UUID)
	UserID         string           `json:"userID"`         // recipient
	RequestID      *string          `json:"requestID,omitempty"`
	Kind           NotificationKind `json:"kind"`
	Message        string           `json:"message"`
	Link           string           `json:"link"`
	IsRead         bool             `json:"isRead"`
	SentAt         time.Time        `json:"sentAt"`
}
