package entity

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is an API account for the billing app.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext past registration
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
