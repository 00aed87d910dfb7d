package dto

import (
	"time"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RequestItemInput is one line of a submitted or resubmitted request.
type RequestItemInput struct {
	ItemName    string          `json:"itemName" binding:"required"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	Unit        string          `json:"unit" binding:"required"`
}

// CreateRequestRequest defines the payload for submitting a purchase request.
type CreateRequestRequest struct {
	BudgetCodeID string             `json:"budgetCodeID" binding:"required,uuid"`
	CurrencyCode string             `json:"currencyCode" binding:"required,len=3,uppercase"`
	Items        []RequestItemInput `json:"items" binding:"required,min=1,dive"`
}

// ResubmitRequestRequest defines the payload for resubmitting a returned-for-edit
// request. Budget code and currency are re-derived from this payload.
type ResubmitRequestRequest struct {
	BudgetCodeID string             `json:"budgetCodeID" binding:"required,uuid"`
	CurrencyCode string             `json:"currencyCode" binding:"required,len=3,uppercase"`
	Items        []RequestItemInput `json:"items" binding:"required,min=1,dive"`
}

// DecisionRequest defines the payload for an approve/reject decision.
type DecisionRequest struct {
	Decision domain.Decision `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	Reason   *string         `json:"reason,omitempty"`
}

// ReturnForEditRequest defines the payload for returning a request to its creator.
type ReturnForEditRequest struct {
	Comments string `json:"comments" binding:"required"`
}

// RequestItemResponse is one request line in API responses.
type RequestItemResponse struct {
	RequestItemID string          `json:"requestItemID"`
	ItemName      string          `json:"itemName"`
	Description   string          `json:"description"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Unit          string          `json:"unit"`
	Total         decimal.Decimal `json:"total"`
}

// RequestResponse is the API shape of a purchase request.
type RequestResponse struct {
	RequestID     string                `json:"requestID"`
	CreatorUserID string                `json:"creatorUserID"`
	DepartmentID  string                `json:"departmentID"`
	BudgetCodeID  string                `json:"budgetCodeID"`
	CurrencyCode  string                `json:"currencyCode"`
	NetAmount     decimal.Decimal       `json:"netAmount"`
	GrossAmount   decimal.Decimal       `json:"grossAmount"`
	Status        domain.RequestStatus  `json:"status"`
	CurrentLevel  int                   `json:"currentLevel"`
	RejectReason  *string               `json:"rejectReason,omitempty"`
	Items         []RequestItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// ToRequestResponse converts a domain.PurchaseRequest to its API shape.
func ToRequestResponse(r *domain.PurchaseRequest) RequestResponse {
	resp := RequestResponse{
		RequestID:     r.RequestID,
		CreatorUserID: r.CreatorUserID,
		DepartmentID:  r.DepartmentID,
		BudgetCodeID:  r.BudgetCodeID,
		CurrencyCode:  r.CurrencyCode,
		NetAmount:     r.NetAmount,
		GrossAmount:   r.GrossAmount,
		Status:        r.Status,
		CurrentLevel:  r.CurrentLevel,
		RejectReason:  r.RejectReason,
		CreatedAt:     r.CreatedAt,
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, RequestItemResponse{
			RequestItemID: item.RequestItemID,
			ItemName:      item.ItemName,
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Unit:          item.Unit,
			Total:         item.Total(),
		})
	}
	return resp
}

// ToRequestResponses converts a slice of requests, omitting items.
func ToRequestResponses(requests []domain.PurchaseRequest) []RequestResponse {
	responses := make([]RequestResponse, len(requests))
	for i := range requests {
		requests[i].Items = nil
		responses[i] = ToRequestResponse(&requests[i])
	}
	return responses
}

// ApprovalResponse is one approval-ledger entry in API responses.
type ApprovalResponse struct {
	ApprovalID     string                 `json:"approvalID"`
	RequestID      string                 `json:"requestID"`
	StepOrder      int                    `json:"stepOrder"`
	ApproverUserID string                 `json:"approverUserID"`
	Outcome        domain.ApprovalOutcome `json:"outcome"`
	Reason         *string                `json:"reason,omitempty"`
	DecidedAt      time.Time              `json:"decidedAt"`
}

// ToApprovalResponses converts approval ledger entries to their API shape.
func ToApprovalResponses(approvals []domain.Approval) []ApprovalResponse {
	responses := make([]ApprovalResponse, len(approvals))
	for i, a := range approvals {
		responses[i] = ApprovalResponse{
			ApprovalID:     a.ApprovalID,
			RequestID:      a.RequestID,
			StepOrder:      a.StepOrder,
			ApproverUserID: a.ApproverUserID,
			Outcome:        a.Outcome,
			Reason:         a.Reason,
			DecidedAt:      a.DecidedAt,
		}
	}
	return responses
}
