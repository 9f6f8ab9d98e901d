package domain

import "time"

// Account holds a registered user. Only the bcrypt hash of the password is kept.
type Account struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
