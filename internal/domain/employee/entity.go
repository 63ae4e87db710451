package employee

import "time"

type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleOwner   Role = "owner"
)

type Employee struct {
	ID           string
	StoreID      string
	EmployeeCode string
	FullName     string
	Role         Role
	PasswordHash *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanManage reports whether the role may access manager endpoints.
func (r Role) CanManage() bool {
	return r == RoleManager || r == RoleOwner
}
