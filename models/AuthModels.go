package models

import "time"

// User is an account row on the auth side of the store.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	Suspended bool      `json:"suspended"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session binds an issued token to a user and device.
type Session struct {
	UserID    int       `json:"user_id"`
	SessionID string    `json:"session_id"`
	HostName  string    `json:"host_name"`
	IPAddress string    `json:"ip_address"`
	Timestamp time.Time `json:"timestamp"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginRequest is the credential payload for /login.
type LoginRequest struct {
	Email    string `json:"email" example:"ops@printshop.example"`
	Password string `json:"password" example:"secret"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// LoginResponse carries the issued tokens.
type LoginResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}
