package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"shelterapi/internal/model"
	"shelterapi/internal/repository"
	"shelterapi/internal/service"
)

// MockCrudService is a testify mock of service.CrudService for any entity.
type MockCrudService[T any] struct {
	mock.Mock
}

func (m *MockCrudService[T]) FindAll(ctx context.Context, filters map[string]any, page repository.PageQuery) (*service.Envelope, error) {
	args := m.Called(ctx, filters, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Envelope), args.Error(1)
}

func (m *MockCrudService[T]) FindOne(ctx context.Context, id int64) (*service.Envelope, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Envelope), args.Error(1)
}

func (m *MockCrudService[T]) Create(ctx context.Context, rec *T) (*service.Envelope, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Envelope), args.Error(1)
}

func (m *MockCrudService[T]) Update(ctx context.Context, id int64, patch map[string]any) (*service.Envelope, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Envelope), args.Error(1)
}

func (m *MockCrudService[T]) Remove(ctx context.Context, id int64) (*service.Envelope, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Envelope), args.Error(1)
}

// MockPetService mocks service.PetService.
type MockPetService struct {
	MockCrudService[model.Pet]
}

func (m *MockPetService) ListByAdopter(ctx context.Context, adopterID int64) (*service.Envelope, error) {
	args := m.Called(ctx, adopterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Envelope), args.Error(1)
}

func (m *MockPetService) UploadPhoto(ctx context.Context, id int64, r io.Reader, originalFilename, contentType string, size int64) (*service.Envelope, error) {
	args := m.Called(ctx, id, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Envelope), args.Error(1)
}

func (m *MockPetService) PhotoURL(ctx context.Context, id int64) (*service.Envelope, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Envelope), args.Error(1)
}

// MockAdopterService mocks service.AdopterService.
type MockAdopterService struct {
	MockCrudService[model.Adopter]
}

func (m *MockAdopterService) FindByEmail(ctx context.Context, email string) (*model.Adopter, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Adopter), args.Error(1)
}

// MockAdminService mocks service.AdminService.
type MockAdminService struct {
	MockCrudService[model.Admin]
}

func (m *MockAdminService) Login(ctx context.Context, email, plain string) (*service.Envelope, error) {
	args := m.Called(ctx, email, plain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Envelope), args.Error(1)
}

func (m *MockAdminService) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}
