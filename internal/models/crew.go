package models

import "time"

// CrewRole represents a crew category with its own per-flight headcount.
type CrewRole string

const (
	// RoleLead is the lead cabin crew role; every flight needs exactly one.
	RoleLead CrewRole = "LCC"
	// RoleSupporting is the supporting cabin crew role; flights carry a
	// configurable headcount of these.
	RoleSupporting CrewRole = "CC"
)

// Valid reports whether the role is one of the known categories.
func (r CrewRole) Valid() bool {
	return r == RoleLead || r == RoleSupporting
}

// CrewMember represents a crew master record.
type CrewMember struct {
	ID         string    `db:"id" json:"id"`
	EmployeeID string    `db:"employee_id" json:"employee_id"`
	FullName   string    `db:"full_name" json:"full_name"`
	Role       CrewRole  `db:"role" json:"role"`
	Phone      *string   `db:"phone" json:"phone,omitempty"`
	Active     bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// CrewFilter captures filtering options for listing crew members.
type CrewFilter struct {
	Search    string
	Role      *CrewRole
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
