package domain

import "time"

// ApprovalStep pairs a 1-based step order with the role required to clear it. Read-only
// reference data; the engine never mutates steps.
type ApprovalStep struct {
	ApprovalStepID string `json:"approvalStepID"` // Primary Key (UUID)
	StepOrder      int    `json:"stepOrder"`
	RequiredRole   Role   `json:"requiredRole"`
	Name           string `json:"name"`
}

// Decision is the verdict an approver submits against a pending request. Returning a
// request for edit is a separate entry point, not a Decision.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// IsValid reports whether d is a known decision verb.
func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// ApprovalOutcome is the recorded result of a single decision.
type ApprovalOutcome string

const (
	OutcomeApproved        ApprovalOutcome = "APPROVED"
	OutcomeRejected        ApprovalOutcome = "REJECTED"
	OutcomeReturnedForEdit ApprovalOutcome = "RETURNED_FOR_EDIT"
)

// Approval is an immutable ledger entry: one per decision, tagged with the level the
// request sat at before the transition. Never updated or deleted.
type Approval struct {
	ApprovalID     string          `json:"approvalID"` // Primary Key (UUID)
	RequestID      string          `json:"requestID"`
	StepOrder      int             `json:"stepOrder"` // level before the transition
	ApproverUserID string          `json:"approverUserID"`
	Outcome        ApprovalOutcome `json:"outcome"`
	Reason         *string         `json:"reason,omitempty"`
	DecidedAt      time.Time       `json:"decidedAt"`
}

// RequestHistory is the business audit trail, distinct from the approval ledger: one
// append-only entry per submission, resubmission, or decision.
type RequestHistory struct {
	HistoryID string    `json:"historyID"` // Primary Key (UUID)
	RequestID string    `json:"requestID"`
	UserID    string    `json:"userID"`
	Action    string    `json:"action"` // e.g. "Submitted", "Approved", "Rejected"
	Details   *string   `json:"details,omitempty"`
	EventDate time.Time `json:"eventDate"`
}
