package domain

// Role is the closed set of roles a user can hold. Dispatching on the enum rather than
// free-form role name strings keeps typo-class bugs out of the approval gates.
type Role string

const (
	RoleEmployee           Role = "EMPLOYEE"
	RoleManager            Role = "MANAGER"
	RoleProcurementManager Role = "PROCUREMENT_MANAGER"
	RoleFinanceOfficer     Role = "FINANCE_OFFICER"
	RoleDirector           Role = "DIRECTOR"
	RoleAdmin              Role = "ADMIN"
	RoleAuditor            Role = "AUDITOR"
)

var validRoles = map[Role]bool{
	RoleEmployee:           true,
	RoleManager:            true,
	RoleProcurementManager: true,
	RoleFinanceOfficer:     true,
	RoleDirector:           true,
	RoleAdmin:              true,
	RoleAuditor:            true,
}

// IsValid reports whether r is one of the defined roles.
func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) String() string {
	return string(r)
}

// ProcurementDepartmentName is the department whose managers act as procurement managers.
const ProcurementDepartmentName = "Procurement"

// DeriveEffectiveRole resolves the role a user effectively holds given the department they
// are assigned to: a Manager assigned to the Procurement department is a
// ProcurementManager. The derivation runs at assignment time and the result is stored, so
// approval checks never re-derive ad hoc.
func DeriveEffectiveRole(role Role, departmentName string) Role {
	if role == RoleManager && departmentName == ProcurementDepartmentName {
		return RoleProcurementManager
	}
	return role
}

// privilegedRoles may see every request, not only their own.
var privilegedRoles = map[Role]bool{
	RoleManager:            true,
	RoleProcurementManager: true,
	RoleFinanceOfficer:     true,
	RoleDirector:           true,
	RoleAdmin:              true,
	RoleAuditor:            true,
}

// IsPrivileged reports whether the role grants visibility over all requests.
func (r Role) IsPrivileged() bool {
	return privilegedRoles[r]
}
