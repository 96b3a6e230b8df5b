package user

import (
	"context"
	"errors"
	"fmt"

	userRepo "riggerbackend/database/repository/user"
	"riggerbackend/models"
	"riggerbackend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a failed sign-in without leaking
// whether the email exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

// DefaultUserService implements UserService over the user repository.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}

// Register creates an account and signs the first session token.
func (s *DefaultUserService) Register(ctx context.Context, u *models.User, password string) (*AuthResult, error) {
	if u.Email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if u.Role == "" {
		u.Role = models.RoleWorker
	}

	if existing, err := s.Repo.GetByEmail(ctx, u.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.issueToken(ctx, u)
}

// Authenticate validates credentials and issues a fresh session token,
// revoking any previous one.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(ctx, u)
}

func (s *DefaultUserService) issueToken(ctx context.Context, u *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(u.ID, u.Role, utils.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateWithDocument(ctx, u.ID, bson.M{"token_hash": tokenHash}); err != nil {
		return nil, err
	}
	u.TokenHash = tokenHash
	if cache := utils.AuthCacheClient; cache != nil {
		_ = cache.Set(ctx, utils.AuthCachePrefix+u.ID, tokenHash, utils.AuthCacheTTL).Err()
	}

	s.Logger.Info("session issued", zap.String("user_id", u.ID), zap.String("role", u.Role))
	return &AuthResult{User: u, Token: token}, nil
}

// GetByID retrieves a user by ID.
func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// Update patches mutable profile fields.
func (s *DefaultUserService) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	allowed := bson.M{}
	for _, key := range []string{"name", "phone", "trade", "certs"} {
		if v, ok := fields[key]; ok {
			allowed[key] = v
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}
	if err := s.Repo.UpdateWithDocument(ctx, id, allowed); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

// RevokeToken invalidates the user's current session. The cached session
// entry is dropped as well so revocation is not delayed by the cache TTL.
func (s *DefaultUserService) RevokeToken(ctx context.Context, id string) error {
	if err := s.Repo.UpdateWithDocument(ctx, id, bson.M{"token_hash": ""}); err != nil {
		return err
	}
	if cache := utils.AuthCacheClient; cache != nil {
		_ = cache.Del(ctx, utils.AuthCachePrefix+id).Err()
	}
	return nil
}

// Delete removes an account.
func (s *DefaultUserService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
