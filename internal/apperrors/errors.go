package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the acting user is not allowed to perform the operation.
var ErrForbidden = errors.New("access denied")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current state")

// ErrInvalidState indicates an internal invariant violation, e.g. a request sitting at an
// approval level that has no step definition. Callers should log and alert, never retry.
var ErrInvalidState = errors.New("invalid internal state")

// ErrRateNotFound indicates no exchange rate exists on or before the reference date.
// Treated as a configuration/data error rather than a user mistake.
var ErrRateNotFound = errors.New("exchange rate not found")

// ErrInsufficientBudget indicates a budget sufficiency check failed. Use
// InsufficientBudgetError to carry the amounts; it unwraps to this sentinel.
var ErrInsufficientBudget = errors.New("insufficient budget")

// InsufficientBudgetError reports a failed budget consumption with the amounts involved.
type InsufficientBudgetError struct {
	BudgetCode string
	Remaining  decimal.Decimal
	Required   decimal.Decimal
}

func (e *InsufficientBudgetError) Error() string {
	return fmt.Sprintf("insufficient funds in budget code %q: remaining %s, required %s",
		e.BudgetCode, e.Remaining.StringFixed(2), e.Required.StringFixed(2))
}

func (e *InsufficientBudgetError) Unwrap() error {
	return ErrInsufficientBudget
}
