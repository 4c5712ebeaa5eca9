package domain

import "time"

// User is the account owner looked up before any balance mutation. The engine
// only consumes users; registration, auth and password hashing live above it.
type User struct {
	UserID    int       `json:"user_id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
