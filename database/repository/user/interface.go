package userRepo

import (
	"context"
	"errors"

	"riggerbackend/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when no user matches.
var ErrNotFound = errors.New("user not found")

// UserRepository defines methods for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.User, error)
	UpdateWithDocument(ctx context.Context, id string, updateDoc bson.M) error
	Delete(ctx context.Context, id string) error
}
