package models

// Role distinguishes what an authenticated account may do.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Account is an authenticated identity. It is never persisted; the roster
// lives in configuration and the session cookie carries the rest.
type Account struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// IsTeacher reports whether the account may perform teacher-only actions.
func (a Account) IsTeacher() bool {
	return a.Role == RoleTeacher
}
