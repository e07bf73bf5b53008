package dto

import (
	"time"

	"github.com/skyops/crew-roster-api/internal/models"
)

// LoginRequest carries operator credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`

	// Filled by the handler, not the client.
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// UserInfo is the public view of an operator account.
type UserInfo struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	FullName string          `json:"full_name"`
	Role     models.UserRole `json:"role"`
}

// LoginResponse returns the issued access token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        UserInfo  `json:"user"`
}
