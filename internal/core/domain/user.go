package domain

// User represents an employee in the directory.
type User struct {
	UserID       string  `json:"userID"` // Primary Key (UUID)
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	DepartmentID *string `json:"departmentID,omitempty"` // nil for directors (no department)
	Roles        []Role  `json:"roles"`
	IsFormer     bool    `json:"isFormer"` // former employees keep their records but cannot act
	AuditFields
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsPrivileged reports whether any of the user's roles grants all-requests visibility.
func (u *User) IsPrivileged() bool {
	for _, r := range u.Roles {
		if r.IsPrivileged() {
			return true
		}
	}
	return false
}

// FullName returns the display name used in notifications.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Department groups users and budget codes. ManagerUserID is a one-directional reference
// resolved via lookup; there is no object-graph cycle back from User.
type Department struct {
	DepartmentID  string  `json:"departmentID"` // Primary Key (UUID)
	Name          string  `json:"name"`
	ManagerUserID *string `json:"managerUserID,omitempty"`
	AuditFields
}
