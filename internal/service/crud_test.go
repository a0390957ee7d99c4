package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shelterapi/internal/model"
	"shelterapi/internal/password"
	"shelterapi/internal/repository"
	repoMocks "shelterapi/internal/repository/mocks"
)

func validAdopter() *model.Adopter {
	return &model.Adopter{
		Name:         "Maria Silva",
		Email:        "maria@example.com",
		Phone:        "(11) 91234-5678",
		Password:     "secret1",
		RegisteredAt: time.Now(),
	}
}

func TestCrudService_FindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("sanitizes passwords and wraps pagination", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		mRepo.On("FindAll", ctx, map[string]any(nil), repository.PageQuery{Page: 2, Limit: 10}).
			Return(&repository.PageResult[model.Adopter]{
				Items: []model.Adopter{
					{ID: 11, Email: "a@b.co", Password: "$2a$10$hash"},
					{ID: 12, Email: "c@d.co", Password: "$2a$10$hash"},
				},
				Total: 25,
			}, nil)

		env, err := svc.FindAll(ctx, nil, repository.PageQuery{Page: 2, Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, env.StatusCode)
		require.NotNil(t, env.Pagination)
		assert.Equal(t, 25, env.Pagination.Total)
		assert.Equal(t, 10, env.Pagination.Limit)
		assert.Equal(t, 2, env.Pagination.Page)

		items := env.Data.([]model.Adopter)
		require.Len(t, items, 2)
		for _, it := range items {
			assert.Empty(t, it.Password)
		}
		mRepo.AssertExpectations(t)
	})

	t.Run("normalizes non-positive page and limit", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		mRepo.On("FindAll", ctx, map[string]any(nil), repository.PageQuery{Page: 1, Limit: 10}).
			Return(&repository.PageResult[model.Adopter]{Items: []model.Adopter{}, Total: 0}, nil)

		env, err := svc.FindAll(ctx, nil, repository.PageQuery{Page: -3, Limit: 0})

		require.NoError(t, err)
		assert.Equal(t, 1, env.Pagination.Page)
		assert.Equal(t, 10, env.Pagination.Limit)
		mRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		mRepo.On("FindAll", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("db fail"))

		env, err := svc.FindAll(ctx, nil, repository.PageQuery{})

		assert.Error(t, err)
		assert.Nil(t, env)
	})
}

func TestCrudService_FindOne(t *testing.T) {
	ctx := context.Background()

	t.Run("found and sanitized", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		mRepo.On("FindByID", ctx, int64(5)).
			Return(&model.Adopter{ID: 5, Password: "$2a$10$hash"}, nil)

		env, err := svc.FindOne(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, env.StatusCode)
		assert.Empty(t, env.Data.(model.Adopter).Password)
	})

	t.Run("missing id raises typed not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		mRepo.On("FindByID", ctx, int64(99)).Return(nil, sql.ErrNoRows)

		env, err := svc.FindOne(ctx, 99)

		assert.Nil(t, env)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, int64(99), nf.ID)
		assert.Contains(t, nf.Error(), "99")
	})
}

func TestCrudService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password and sanitizes response", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		var stored model.Adopter
		mRepo.On("Create", ctx, mock.MatchedBy(func(a *model.Adopter) bool {
			stored = *a
			// The plaintext never reaches the repository.
			return a.Password != "secret1" && password.Verify(a.Password, "secret1")
		})).Return(&model.Adopter{ID: 1, Email: "maria@example.com", Password: "$2a$10$hash"}, nil)

		env, err := svc.Create(ctx, validAdopter())

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, env.StatusCode)

		// The created payload is sanitized, never the plaintext or the hash.
		created := env.Data.(model.Adopter)
		assert.Empty(t, created.Password)
		assert.True(t, password.Verify(stored.Password, "secret1"))
		assert.False(t, password.Verify(stored.Password, "other"))
		mRepo.AssertExpectations(t)
	})

	t.Run("collects every validation message", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		env, err := svc.Create(ctx, &model.Adopter{Email: "not-an-email", Phone: "12345"})

		assert.Nil(t, env)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		// name, email, phone, password, registered_at all invalid.
		assert.Len(t, ve.Messages, 5)
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("wraps persistence failures as bad request", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("duplicate key"))

		env, err := svc.Create(ctx, validAdopter())

		assert.Nil(t, env)
		var pe *PersistenceError
		require.ErrorAs(t, err, &pe)
		assert.Contains(t, pe.Error(), "duplicate key")
	})
}

func TestCrudService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes secret patch keys", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		mRepo.On("Update", ctx, int64(1), mock.MatchedBy(func(patch map[string]any) bool {
			h, _ := patch["password"].(string)
			return password.Verify(h, "newsecret")
		})).Return(&model.Adopter{ID: 1}, nil)

		env, err := svc.Update(ctx, 1, map[string]any{"password": "newsecret"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, env.StatusCode)
		// Update success carries no data payload.
		assert.Nil(t, env.Data)
		mRepo.AssertExpectations(t)
	})

	t.Run("missing id raises typed not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		mRepo.On("Update", ctx, int64(42), mock.Anything).Return(nil, sql.ErrNoRows)

		env, err := svc.Update(ctx, 42, map[string]any{"name": "New"})

		assert.Nil(t, env)
		var nf *NotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("rejects invalid patch fields", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		env, err := svc.Update(ctx, 1, map[string]any{"email": "bad", "password": "abc"})

		assert.Nil(t, env)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Len(t, ve.Messages, 2)
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wraps persistence failures", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		mRepo.On("Update", ctx, int64(1), mock.Anything).Return(nil, errors.New("constraint"))

		_, err := svc.Update(ctx, 1, map[string]any{"name": "New"})

		var pe *PersistenceError
		assert.ErrorAs(t, err, &pe)
	})
}

func TestCrudService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("removed", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		mRepo.On("Delete", ctx, int64(1)).Return(true, nil)

		env, err := svc.Remove(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, env.StatusCode)
	})

	t.Run("missing id raises typed not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockAdopterRepository)
		svc := NewCrudService[model.Adopter](mRepo, adopterDescriptor(), bcrypt.MinCost)

		mRepo.On("Delete", ctx, int64(42)).Return(false, nil)

		env, err := svc.Remove(ctx, 42)

		assert.Nil(t, env)
		var nf *NotFoundError
		assert.ErrorAs(t, err, &nf)
	})
}
