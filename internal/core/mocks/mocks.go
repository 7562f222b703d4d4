package mocks

import (
	"context"

	"github.com/lorrc/user-management-api/internal/core/domain"
	"github.com/lorrc/user-management-api/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, params domain.UserCreate) (*domain.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockUserService is a mock implementation of ports.UserService
type MockUserService struct {
	mock.Mock
}

var _ ports.UserService = (*MockUserService)(nil)

func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) CreateUser(ctx context.Context, params domain.UserCreate) (*domain.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockHealthProber is a mock implementation of ports.HealthProber
type MockHealthProber struct {
	mock.Mock
}

var _ ports.HealthProber = (*MockHealthProber)(nil)

func NewMockHealthProber() *MockHealthProber {
	return &MockHealthProber{}
}

func (m *MockHealthProber) Probe(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
