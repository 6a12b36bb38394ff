package model

import "time"

// User represents a registered account on the investment service. The
// password is stored only as a bcrypt hash, never in clear text.
type User struct {
	CreatedAt    time.Time
	Username     string
	PasswordHash string
	ID           int64
}
