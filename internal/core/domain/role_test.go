package domain_test

import (
	"testing"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	for _, role := range []domain.Role{
		domain.RoleEmployee,
		domain.RoleManager,
		domain.RoleProcurementManager,
		domain.RoleFinanceOfficer,
		domain.RoleDirector,
		domain.RoleAdmin,
		domain.RoleAuditor,
	} {
		assert.True(t, role.IsValid(), "role %s should be valid", role)
	}

	assert.False(t, domain.Role("INTERN").IsValid())
	assert.False(t, domain.Role("").IsValid())
	assert.False(t, domain.Role("manager").IsValid(), "role matching is case-sensitive")
}

func TestDeriveEffectiveRole(t *testing.T) {
	tests := []struct {
		name           string
		role           domain.Role
		departmentName string
		want           domain.Role
	}{
		{
			name:           "manager of procurement department becomes procurement manager",
			role:           domain.RoleManager,
			departmentName: domain.ProcurementDepartmentName,
			want:           domain.RoleProcurementManager,
		},
		{
			name:           "manager of another department stays manager",
			role:           domain.RoleManager,
			departmentName: "Engineering",
			want:           domain.RoleManager,
		},
		{
			name:           "employee of procurement department stays employee",
			role:           domain.RoleEmployee,
			departmentName: domain.ProcurementDepartmentName,
			want:           domain.RoleEmployee,
		},
		{
			name:           "director without department stays director",
			role:           domain.RoleDirector,
			departmentName: "",
			want:           domain.RoleDirector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DeriveEffectiveRole(tt.role, tt.departmentName))
		})
	}
}

func TestUser_HasRole(t *testing.T) {
	user := domain.User{Roles: []domain.Role{domain.RoleEmployee, domain.RoleFinanceOfficer}}

	assert.True(t, user.HasRole(domain.RoleFinanceOfficer))
	assert.True(t, user.HasRole(domain.RoleEmployee))
	assert.False(t, user.HasRole(domain.RoleDirector))
}

func TestUser_IsPrivileged(t *testing.T) {
	employee := domain.User{Roles: []domain.Role{domain.RoleEmployee}}
	assert.False(t, employee.IsPrivileged())

	auditor := domain.User{Roles: []domain.Role{domain.RoleEmployee, domain.RoleAuditor}}
	assert.True(t, auditor.IsPrivileged())

	director := domain.User{Roles: []domain.Role{domain.RoleDirector}}
	assert.True(t, director.IsPrivileged())
}
