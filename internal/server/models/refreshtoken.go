package models

import "time"

// RefreshToken is one entry of a user's list of currently valid refresh
// tokens.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
