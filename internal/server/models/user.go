package models

import "time"

// User is an account. PasswordHash is only populated by lookups that need it
// for credential checks and never leaves the service layer.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
