package model

import "time"

// Staff roles accepted on admin endpoints.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// StaffUser represents an account that may operate the admin surface
// (reservation dashboard, table blocks, order management).  Only a bcrypt
// hash of the password is stored.
type StaffUser struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}
