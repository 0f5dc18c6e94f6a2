package user

import "time"

// User is the persisted account record. The password hash and salt never
// leave the server: both are excluded from JSON serialization.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	Salt         []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateUserRequest struct {
	Name     string
	Email    string
	Username string
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest carries the login form. Username accepts either an email
// address or a username.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
