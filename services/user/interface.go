package user

import (
	"context"

	"riggerbackend/models"
)

// AuthResult is the outcome of a successful authentication.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService manages platform accounts for workers and employers.
type UserService interface {
	Register(ctx context.Context, user *models.User, password string) (*AuthResult, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error)
	RevokeToken(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
