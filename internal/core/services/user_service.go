package services

import (
	"context"

	"github.com/lorrc/user-management-api/internal/core/domain"
	apperrors "github.com/lorrc/user-management-api/internal/core/errors"
	"github.com/lorrc/user-management-api/internal/core/ports"
)

// UserService implements user management business logic
type UserService struct {
	userRepo ports.UserRepository
}

var _ ports.UserService = (*UserService)(nil)

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository) ports.UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUser validates the parameters and persists a new user.
// Store failures are returned unchanged.
func (s *UserService) CreateUser(ctx context.Context, params domain.UserCreate) (*domain.User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.userRepo.Create(ctx, params)
}

// GetUser returns the user with the given ID, or ErrUserNotFound.
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	// Serial ids start at 1
	if id < 1 {
		return nil, apperrors.ErrUserNotFound
	}

	return s.userRepo.GetByID(ctx, id)
}
