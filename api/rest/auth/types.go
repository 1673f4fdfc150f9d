package auth

import "codeberg.org/finpilot/server/finpilot/users"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// returned by register and login
type AuthResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

type UserResponse struct {
	User *users.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
