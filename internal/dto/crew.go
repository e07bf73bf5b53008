package dto

// CreateCrewRequest registers a new crew member.
type CreateCrewRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required,max=20"`
	FullName   string  `json:"full_name" validate:"required,max=100"`
	Role       string  `json:"role" validate:"required,oneof=LCC CC"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// UpdateCrewRequest patches mutable crew fields. Nil fields are untouched.
type UpdateCrewRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Active   *bool   `json:"active,omitempty"`
}
