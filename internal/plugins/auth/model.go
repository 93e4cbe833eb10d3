// Package auth handles user accounts, password security and sessions for
// Fred AI. It provides registration, login, logout, and session validation
// backed by an opaque token stored in Redis.
package auth

import (
	"time"
)

// User is the credential-bearing slice of a users row. Registration writes
// the initial profile; lookups load only what login and sessions need, so
// Birthday and Phone are left empty on reads. The settings plugin owns
// profile edits and the WiFi columns.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // Never expose in JSON responses.
	DisplayName  string     `json:"display_name"`
	FirstName    string     `json:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Avatar       string     `json:"avatar,omitempty"`
	Theme        string     `json:"theme"`
	CreatedAt    time.Time  `json:"created_at"`
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the data submitted by the registration form.
type RegisterRequest struct {
	Username    string `json:"username" form:"username"`
	Password    string `json:"password" form:"password"`
	Confirm     string `json:"confirm_password" form:"confirm_password"`
	DisplayName string `json:"display_name" form:"display_name"`
	FirstName   string `json:"first_name" form:"first_name"`
	LastName    string `json:"last_name" form:"last_name"`
	Birthday    string `json:"birthday" form:"birthday"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
	Avatar      string `json:"avatar" form:"avatar"`
}

// LoginRequest holds the data submitted by the login form.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the input for creating a new user. The service validates
// it; handlers pass it through untouched.
type RegisterInput struct {
	Username    string
	Password    string
	Confirm     string
	DisplayName string
	FirstName   string
	LastName    string
	Birthday    string
	Email       string
	Phone       string
	Avatar      string
}

// LoginInput is the input for authenticating a user.
type LoginInput struct {
	Username string
	Password string
}

// --- Session ---

// Session represents an authenticated user session stored in Redis.
// The token is the key, and this struct is the value (JSON-encoded).
type Session struct {
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Avatar      string    `json:"avatar,omitempty"`
	Theme       string    `json:"theme,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionProfile is the subset of a session that changes when the user
// edits their profile.
type SessionProfile struct {
	DisplayName string
	Avatar      string
	Theme       string
}
