package models

type Role string

const (
	UserRole           Role = "user"
	DepartmentHeadRole Role = "departmentHead"
	AdministratorRole  Role = "administrator"
)

func (r Role) Valid() bool {
	return r == UserRole || r == DepartmentHeadRole || r == AdministratorRole
}

// Identity is the caller context produced by the auth layer for every protected call.
type Identity struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	DepartmentID string `json:"department_id"`
}
