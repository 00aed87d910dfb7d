package domain

import "github.com/shopspring/decimal"

// BudgetCode is a per-department, per-year spending pool in the home currency.
// RemainingAmount is only ever decremented through the ledger's consumption path and must
// never go negative.
type BudgetCode struct {
	BudgetCodeID    string          `json:"budgetCodeID"` // Primary Key (UUID)
	DepartmentID    string          `json:"departmentID"`
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	Year            int             `json:"year"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"` // home currency
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// BudgetConsumption is the amount (home currency) a finally-approved request draws from a
// budget code. It is carried alongside the state transition so both commit atomically.
type BudgetConsumption struct {
	BudgetCodeID string
	Amount       decimal.Decimal
}
