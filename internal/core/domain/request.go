package domain

import "github.com/shopspring/decimal"

// RequestStatus is the lifecycle state of a purchase request.
type RequestStatus string

const (
	StatusPending         RequestStatus = "PENDING"
	StatusApproved        RequestStatus = "APPROVED"
	StatusRejected        RequestStatus = "REJECTED"
	StatusReturnedForEdit RequestStatus = "RETURNED_FOR_EDIT"
)

// IsTerminal reports whether no further approval decisions can act on the status.
// ReturnedForEdit is not terminal: the creator can resubmit.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Approval levels. A request waits at exactly one level while Pending; LevelResolved is
// the sentinel for requests outside the step sequence (fully approved or rejected).
const (
	LevelDepartmentManager  = 1
	LevelProcurementManager = 2
	LevelDirector           = 3
	LevelResolved           = 99
)

// GrossMarkupFactor is the fixed markup applied to the net amount (e.g. VAT). The gross
// amount is recomputed from items on every create/edit.
var GrossMarkupFactor = decimal.RequireFromString("1.20")

// DefaultHighValueThreshold is the home-currency cutoff above which procurement-manager
// approval escalates to the director. Comparison is strictly greater-than.
var DefaultHighValueThreshold = decimal.NewFromInt(1_000_000)

// PurchaseRequest is the unit of work moving through the approval pipeline.
type PurchaseRequest struct {
	RequestID     string          `json:"requestID"` // Primary Key (UUID)
	CreatorUserID string          `json:"creatorUserID"`
	DepartmentID  string          `json:"departmentID"`
	BudgetCodeID  string          `json:"budgetCodeID"`
	CurrencyCode  string          `json:"currencyCode"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	GrossAmount   decimal.Decimal `json:"grossAmount"`
	Status        RequestStatus   `json:"status"`
	CurrentLevel  int             `json:"currentLevel"` // 1-based, or LevelResolved
	RejectReason  *string         `json:"rejectReason,omitempty"`
	Items         []RequestItem   `json:"items,omitempty"`
	AuditFields
}

// RequestItem is owned by exactly one PurchaseRequest and lives and dies with its parent's
// item list.
type RequestItem struct {
	RequestItemID string          `json:"requestItemID"` // Primary Key (UUID)
	RequestID     string          `json:"requestID"`
	ItemName      string          `json:"itemName"`
	Description   string          `json:"description"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Unit          string          `json:"unit"` // e.g. "piece", "kg"
}

// Total returns quantity × unit price.
func (i RequestItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// RecomputeAmounts rebuilds NetAmount from the item list and GrossAmount from the markup
// factor. Invariant: grossAmount == netAmount × GrossMarkupFactor after every call.
func (r *PurchaseRequest) RecomputeAmounts() {
	net := decimal.Zero
	for _, item := range r.Items {
		net = net.Add(item.Total())
	}
	r.NetAmount = net
	r.GrossAmount = net.Mul(GrossMarkupFactor)
}
