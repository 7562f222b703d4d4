package ports

import (
	"context"

	"github.com/lorrc/user-management-api/internal/core/domain"
)

// UserRepository is the boundary between the core and the user store.
// Every method is a single round trip; GetByID reports absence with
// errors.ErrUserNotFound and store failures with *errors.StoreError.
type UserRepository interface {
	Create(ctx context.Context, params domain.UserCreate) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// HealthProber runs a cheap, bounded read against the store.
type HealthProber interface {
	Probe(ctx context.Context) error
}
