package ports

import (
	"context"

	"github.com/lorrc/user-management-api/internal/core/domain"
)

// UserService defines the core business operations for managing users.
type UserService interface {
	CreateUser(ctx context.Context, params domain.UserCreate) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}
