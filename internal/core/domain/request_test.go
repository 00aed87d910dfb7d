package domain_test

import (
	"testing"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRequestItem_Total(t *testing.T) {
	tests := []struct {
		name string
		item domain.RequestItem
		want string
	}{
		{
			name: "single unit",
			item: domain.RequestItem{Quantity: 1, UnitPrice: decimal.RequireFromString("199.99")},
			want: "199.99",
		},
		{
			name: "multiple units",
			item: domain.RequestItem{Quantity: 12, UnitPrice: decimal.RequireFromString("2.50")},
			want: "30",
		},
		{
			name: "large quantity keeps precision",
			item: domain.RequestItem{Quantity: 1000, UnitPrice: decimal.RequireFromString("0.333")},
			want: "333",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.item.Total().Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", tt.item.Total(), tt.want)
		})
	}
}

func TestPurchaseRequest_RecomputeAmounts(t *testing.T) {
	request := domain.PurchaseRequest{
		Items: []domain.RequestItem{
			{Quantity: 2, UnitPrice: decimal.RequireFromString("100")},
			{Quantity: 3, UnitPrice: decimal.RequireFromString("50.50")},
		},
	}

	request.RecomputeAmounts()

	assert.True(t, request.NetAmount.Equal(decimal.RequireFromString("351.50")),
		"net amount: got %s", request.NetAmount)
	assert.True(t, request.GrossAmount.Equal(decimal.RequireFromString("421.80")),
		"gross amount: got %s", request.GrossAmount)
}

func TestPurchaseRequest_RecomputeAmounts_MarkupInvariant(t *testing.T) {
	request := domain.PurchaseRequest{
		Items: []domain.RequestItem{
			{Quantity: 7, UnitPrice: decimal.RequireFromString("13.37")},
		},
	}

	request.RecomputeAmounts()

	assert.True(t, request.GrossAmount.Equal(request.NetAmount.Mul(domain.GrossMarkupFactor)))
}

func TestPurchaseRequest_RecomputeAmounts_EmptyItems(t *testing.T) {
	request := domain.PurchaseRequest{
		NetAmount:   decimal.RequireFromString("500"),
		GrossAmount: decimal.RequireFromString("600"),
	}

	request.RecomputeAmounts()

	assert.True(t, request.NetAmount.IsZero())
	assert.True(t, request.GrossAmount.IsZero())
}

func TestRequestStatus_IsTerminal(t *testing.T) {
	assert.True(t, domain.StatusApproved.IsTerminal())
	assert.True(t, domain.StatusRejected.IsTerminal())
	assert.False(t, domain.StatusPending.IsTerminal())
	assert.False(t, domain.StatusReturnedForEdit.IsTerminal())
}
