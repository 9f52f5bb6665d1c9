package identity

import "time"

// User represents a registered account holder.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

// RegisterInput carries the candidate identity submitted at signup.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}
