package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/lorrc/user-management-api/internal/core/domain"
	apperrors "github.com/lorrc/user-management-api/internal/core/errors"
	"github.com/lorrc/user-management-api/internal/core/ports"
)

const (
	createUserQuery = `INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id, name, email`
	getUserQuery    = `SELECT id, name, email FROM users WHERE id = $1`
	probeQuery      = `SELECT id FROM users LIMIT 1`
)

type UserRepository struct {
	db DBTX
}

var (
	_ ports.UserRepository = (*UserRepository)(nil)
	_ ports.HealthProber   = (*UserRepository)(nil)
)

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, params domain.UserCreate) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, createUserQuery, params.Name, params.Email))
	if err != nil {
		// Unique violations on email land here too; the schema is the only
		// arbiter of uniqueness.
		return nil, apperrors.NewStoreError("create user", err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, getUserQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.NewStoreError("get user", err)
	}
	return user, nil
}

// Probe reads at most one row from the users table. An empty table is
// a healthy store.
func (r *UserRepository) Probe(ctx context.Context) error {
	var id int64
	err := r.db.QueryRow(ctx, probeQuery).Scan(&id)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewStoreError("probe users", err)
	}
	return nil
}
