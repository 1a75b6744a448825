package entity

import "time"

// Role is the authorization role assigned to a user.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleStudent Role = "Student"
)

// ParseRole maps a request-supplied role string to a known Role.
// An empty string falls back to Student; anything else is rejected.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleStudent, Role(""):
		return RoleStudent, true
	default:
		return "", false
	}
}

// User is the aggregate root for the user domain.
// PasswordHash holds a bcrypt hash and must never be serialized
// into an API response; handlers expose dedicated view structs instead.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
