package entity

import (
	"time"
)

// User is the aggregate root for the identity domain. A user is created on
// the first OTP request (phone credential) or the first Google login
// (federated credential); at least one of Phone/GoogleID is always present.
// Empty string means the column is NULL.
type User struct {
	ID        string
	Name      string
	Phone     string
	GoogleID  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
