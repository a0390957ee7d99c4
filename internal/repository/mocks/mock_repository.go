package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shelterapi/internal/model"
	"shelterapi/internal/repository"
)

// MockCrud is a testify mock of repository.Crud for any entity type.
type MockCrud[T any] struct {
	mock.Mock
}

func (m *MockCrud[T]) FindAll(ctx context.Context, filters map[string]any, page repository.PageQuery) (*repository.PageResult[T], error) {
	args := m.Called(ctx, filters, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[T]), args.Error(1)
}

func (m *MockCrud[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCrud[T]) Create(ctx context.Context, rec *T) (*T, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCrud[T]) Update(ctx context.Context, id int64, patch map[string]any) (*T, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCrud[T]) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAdopterRepository mocks repository.AdopterRepository.
type MockAdopterRepository struct {
	MockCrud[model.Adopter]
}

func (m *MockAdopterRepository) FindByEmail(ctx context.Context, email string) (*model.Adopter, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Adopter), args.Error(1)
}

// MockPetRepository mocks repository.PetRepository.
type MockPetRepository struct {
	MockCrud[model.Pet]
}

func (m *MockPetRepository) FindByAdopterID(ctx context.Context, adopterID int64) ([]model.Pet, error) {
	args := m.Called(ctx, adopterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pet), args.Error(1)
}

// MockAdminRepository mocks repository.AdminRepository.
type MockAdminRepository struct {
	MockCrud[model.Admin]
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}
