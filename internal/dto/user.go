package dto

import (
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
)

// CreateUserRequest defines the payload for creating a user.
type CreateUserRequest struct {
	FirstName    string        `json:"firstName" binding:"required"`
	LastName     string        `json:"lastName" binding:"required"`
	Email        string        `json:"email" binding:"required,email"`
	Password     string        `json:"password" binding:"required,min=8"`
	DepartmentID *string       `json:"departmentID,omitempty" binding:"omitempty,uuid"`
	Roles        []domain.Role `json:"roles" binding:"required,min=1"`
}

// UpdateUserRequest defines the payload for updating a user. Nil fields are left
// unchanged.
type UpdateUserRequest struct {
	FirstName    *string        `json:"firstName,omitempty"`
	LastName     *string        `json:"lastName,omitempty"`
	Email        *string        `json:"email,omitempty" binding:"omitempty,email"`
	DepartmentID *string        `json:"departmentID,omitempty" binding:"omitempty,uuid"`
	Roles        *[]domain.Role `json:"roles,omitempty"`
	IsFormer     *bool          `json:"isFormer,omitempty"`
}

// UserResponse is the API shape of a user. The password hash never leaves the server.
type UserResponse struct {
	UserID       string        `json:"userID"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Email        string        `json:"email"`
	DepartmentID *string       `json:"departmentID,omitempty"`
	Roles        []domain.Role `json:"roles"`
	IsFormer     bool          `json:"isFormer"`
}

// ToUserResponse converts a domain.User to its API shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		DepartmentID: u.DepartmentID,
		Roles:        u.Roles,
		IsFormer:     u.IsFormer,
	}
}

// ToUserResponses converts a slice of users.
func ToUserResponses(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}

// CreateDepartmentRequest defines the payload for creating a department.
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

// SetDepartmentManagerRequest designates a department's approving manager.
type SetDepartmentManagerRequest struct {
	ManagerUserID string `json:"managerUserID" binding:"required,uuid"`
}

// DepartmentResponse is the API shape of a department.
type DepartmentResponse struct {
	DepartmentID  string  `json:"departmentID"`
	Name          string  `json:"name"`
	ManagerUserID *string `json:"managerUserID,omitempty"`
}

// ToDepartmentResponse converts a domain.Department to its API shape.
func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID:  d.DepartmentID,
		Name:          d.Name,
		ManagerUserID: d.ManagerUserID,
	}
}

// ToDepartmentResponses converts a slice of departments.
func ToDepartmentResponses(departments []domain.Department) []DepartmentResponse {
	responses := make([]DepartmentResponse, len(departments))
	for i := range departments {
		responses[i] = ToDepartmentResponse(&departments[i])
	}
	return responses
}
