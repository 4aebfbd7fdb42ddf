package user

import "github.com/grindhub/grindhub/pkg/response"

// SignupRequest represents the request to create an account
type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetUserRequest represents the request for a user's profile
type GetUserRequest struct {
	UserID string `json:"userid"`
}

// SignupResponse is the wire shape for a created account
type SignupResponse struct {
	response.Envelope
	User *User `json:"user"`
}

// LoginResponse carries the session token on success
type LoginResponse struct {
	response.Envelope
	Token string `json:"token"`
}

// GetUserResponse is the wire shape for a user profile
type GetUserResponse struct {
	response.Envelope
	User *User `json:"user"`
}
