package services_test

import (
	"context"
	"testing"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	"github.com/candenizkocak/procurementsystem/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineEntryLevel(t *testing.T) {
	classifier := services.NewClassifierService(domain.DefaultHighValueThreshold)
	ctx := context.Background()

	userWith := func(roles ...domain.Role) *domain.User {
		return &domain.User{UserID: "u-1", Roles: roles}
	}

	tests := []struct {
		name      string
		creator   *domain.User
		grossHome decimal.Decimal
		want      int
	}{
		{
			name:      "employee enters at department manager",
			creator:   userWith(domain.RoleEmployee),
			grossHome: decimal.NewFromInt(500),
			want:      domain.LevelDepartmentManager,
		},
		{
			name:      "manager enters at procurement manager",
			creator:   userWith(domain.RoleManager),
			grossHome: decimal.NewFromInt(500),
			want:      domain.LevelProcurementManager,
		},
		{
			name:      "finance officer enters at procurement manager",
			creator:   userWith(domain.RoleFinanceOfficer),
			grossHome: decimal.NewFromInt(500),
			want:      domain.LevelProcurementManager,
		},
		{
			name:      "procurement manager below threshold auto-approves",
			creator:   userWith(domain.RoleProcurementManager),
			grossHome: decimal.NewFromInt(999_999),
			want:      domain.LevelResolved,
		},
		{
			name:      "procurement manager exactly at threshold auto-approves",
			creator:   userWith(domain.RoleProcurementManager),
			grossHome: decimal.NewFromInt(1_000_000),
			want:      domain.LevelResolved,
		},
		{
			name:      "procurement manager above threshold goes to director",
			creator:   userWith(domain.RoleProcurementManager),
			grossHome: decimal.RequireFromString("1000000.01"),
			want:      domain.LevelDirector,
		},
		{
			name:      "director always auto-approves",
			creator:   userWith(domain.RoleDirector),
			grossHome: decimal.NewFromInt(50_000_000),
			want:      domain.LevelResolved,
		},
		{
			name:      "director role wins over procurement manager role",
			creator:   userWith(domain.RoleProcurementManager, domain.RoleDirector),
			grossHome: decimal.NewFromInt(5_000_000),
			want:      domain.LevelResolved,
		},
		{
			name:      "procurement manager role wins over manager role",
			creator:   userWith(domain.RoleManager, domain.RoleProcurementManager),
			grossHome: decimal.NewFromInt(500),
			want:      domain.LevelResolved,
		},
		{
			name:      "auditor without workflow role enters at department manager",
			creator:   userWith(domain.RoleAuditor),
			grossHome: decimal.NewFromInt(500),
			want:      domain.LevelDepartmentManager,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifier.DetermineEntryLevel(ctx, tt.creator, tt.grossHome)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetermineEntryLevel_NilCreator(t *testing.T) {
	classifier := services.NewClassifierService(domain.DefaultHighValueThreshold)

	_, err := classifier.DetermineEntryLevel(context.Background(), nil, decimal.NewFromInt(100))

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDetermineEntryLevel_CustomThreshold(t *testing.T) {
	classifier := services.NewClassifierService(decimal.NewFromInt(10_000))
	creator := &domain.User{UserID: "u-1", Roles: []domain.Role{domain.RoleProcurementManager}}

	level, err := classifier.DetermineEntryLevel(context.Background(), creator, decimal.NewFromInt(10_001))
	assert.NoError(t, err)
	assert.Equal(t, domain.LevelDirector, level)

	level, err = classifier.DetermineEntryLevel(context.Background(), creator, decimal.NewFromInt(10_000))
	assert.NoError(t, err)
	assert.Equal(t, domain.LevelResolved, level)
}
