package auth

import "servicehub/internal/domain"

type SignupRequest struct {
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required,min=6"`
	FirstName    string   `json:"firstName" binding:"required,max=100"`
	LastName     string   `json:"lastName" binding:"required,max=100"`
	Phone        string   `json:"phone" binding:"omitempty,max=32"`
	Role         string   `json:"role" binding:"omitempty,oneof=CUSTOMER PROVIDER"`
	BusinessName string   `json:"businessName" binding:"omitempty,max=255"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude" binding:"required_with=Longitude,omitempty,latitude"`
	Longitude    *float64 `json:"longitude" binding:"required_with=Latitude,omitempty,longitude"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult is returned by signup and signin.
type AuthResult struct {
	User  *domain.User
	Token string
}
