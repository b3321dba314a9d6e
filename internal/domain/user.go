package domain

import "time"

// Role enumerates internal account roles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleHR        Role = "hr"
	RoleRecruiter Role = "recruiter"
	RoleManager   Role = "manager"
)

// ValidRole reports whether the given role is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleHR, RoleRecruiter, RoleManager:
		return true
	}
	return false
}

// User models a back-office account (admin, HR, recruiter or manager).
// PasswordHash is never serialized; permissions are derived from Role at
// read time rather than stored.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	Department   string
	Phone        string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
