package dto

import (
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetCodeRequest defines the payload for creating a budget code.
type CreateBudgetCodeRequest struct {
	DepartmentID string          `json:"departmentID" binding:"required,uuid"`
	Code         string          `json:"code" binding:"required"`
	Description  string          `json:"description"`
	Year         int             `json:"year" binding:"required,gte=2000"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateBudgetCodeRequest defines the payload for updating a budget code's descriptive
// fields and allocation. The remaining balance cannot be set directly.
type UpdateBudgetCodeRequest struct {
	Code        *string          `json:"code,omitempty"`
	Description *string          `json:"description,omitempty"`
	Year        *int             `json:"year,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
}

// BudgetCodeResponse is the API shape of a budget code.
type BudgetCodeResponse struct {
	BudgetCodeID    string          `json:"budgetCodeID"`
	DepartmentID    string          `json:"departmentID"`
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	Year            int             `json:"year"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	IsActive        bool            `json:"isActive"`
}

// ToBudgetCodeResponse converts a domain.BudgetCode to its API shape.
func ToBudgetCodeResponse(b *domain.BudgetCode) BudgetCodeResponse {
	return BudgetCodeResponse{
		BudgetCodeID:    b.BudgetCodeID,
		DepartmentID:    b.DepartmentID,
		Code:            b.Code,
		Description:     b.Description,
		Year:            b.Year,
		RemainingAmount: b.RemainingAmount,
		IsActive:        b.IsActive,
	}
}

// ToBudgetCodeResponses converts a slice of budget codes.
func ToBudgetCodeResponses(codes []domain.BudgetCode) []BudgetCodeResponse {
	responses := make([]BudgetCodeResponse, len(codes))
	for i := range codes {
		responses[i] = ToBudgetCodeResponse(&codes[i])
	}
	return responses
}
