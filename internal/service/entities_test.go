package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shelterapi/internal/model"
	"shelterapi/internal/password"
	repoMocks "shelterapi/internal/repository/mocks"
)

func TestAdopterService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected with conflict while pets reference the adopter", func(t *testing.T) {
		mAdopters := new(repoMocks.MockAdopterRepository)
		mPets := new(repoMocks.MockPetRepository)
		svc := NewAdopterService(mAdopters, mPets, bcrypt.MinCost)

		adopterID := int64(3)
		mPets.On("FindByAdopterID", ctx, adopterID).
			Return([]model.Pet{{ID: 1, AdopterID: &adopterID}}, nil)

		env, err := svc.Remove(ctx, adopterID)

		assert.Nil(t, env)
		var ce *ConflictError
		require.ErrorAs(t, err, &ce)
		assert.Contains(t, ce.Error(), "cannot be removed")
		mAdopters.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unreferenced adopter is removed", func(t *testing.T) {
		mAdopters := new(repoMocks.MockAdopterRepository)
		mPets := new(repoMocks.MockPetRepository)
		svc := NewAdopterService(mAdopters, mPets, bcrypt.MinCost)

		mPets.On("FindByAdopterID", ctx, int64(3)).Return([]model.Pet{}, nil)
		mAdopters.On("Delete", ctx, int64(3)).Return(true, nil)

		env, err := svc.Remove(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, env.StatusCode)
		mAdopters.AssertExpectations(t)
		mPets.AssertExpectations(t)
	})

	t.Run("missing adopter raises not found", func(t *testing.T) {
		mAdopters := new(repoMocks.MockAdopterRepository)
		mPets := new(repoMocks.MockPetRepository)
		svc := NewAdopterService(mAdopters, mPets, bcrypt.MinCost)

		mPets.On("FindByAdopterID", ctx, int64(42)).Return([]model.Pet{}, nil)
		mAdopters.On("Delete", ctx, int64(42)).Return(false, nil)

		env, err := svc.Remove(ctx, 42)

		assert.Nil(t, env)
		var nf *NotFoundError
		assert.ErrorAs(t, err, &nf)
	})
}

func TestAdopterService_FindByEmail(t *testing.T) {
	ctx := context.Background()
	mAdopters := new(repoMocks.MockAdopterRepository)
	mPets := new(repoMocks.MockPetRepository)
	svc := NewAdopterService(mAdopters, mPets, bcrypt.MinCost)

	t.Run("found", func(t *testing.T) {
		mAdopters.On("FindByEmail", ctx, "maria@example.com").
			Return(&model.Adopter{ID: 1, Email: "maria@example.com"}, nil).Once()

		a, err := svc.FindByEmail(ctx, "maria@example.com")

		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, int64(1), a.ID)
	})

	t.Run("absent returns nil without error", func(t *testing.T) {
		mAdopters.On("FindByEmail", ctx, "nobody@example.com").
			Return(nil, sql.ErrNoRows).Once()

		a, err := svc.FindByEmail(ctx, "nobody@example.com")

		require.NoError(t, err)
		assert.Nil(t, a)
	})
}

func TestAdminService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := password.Hash("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	admin := &model.Admin{ID: 1, Name: "Root", Email: "root@shelter.org", Password: hash}

	t.Run("success returns sanitized admin", func(t *testing.T) {
		mAdmins := new(repoMocks.MockAdminRepository)
		svc := NewAdminService(mAdmins, bcrypt.MinCost)

		mAdmins.On("FindByEmail", ctx, admin.Email).Return(admin, nil)

		env, err := svc.Login(ctx, admin.Email, "secret1")

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, env.StatusCode)
		out := env.Data.(model.Admin)
		assert.Equal(t, admin.Email, out.Email)
		assert.Empty(t, out.Password)
	})

	t.Run("wrong password", func(t *testing.T) {
		mAdmins := new(repoMocks.MockAdminRepository)
		svc := NewAdminService(mAdmins, bcrypt.MinCost)

		mAdmins.On("FindByEmail", ctx, admin.Email).Return(admin, nil)

		env, err := svc.Login(ctx, admin.Email, "wrong")

		assert.Nil(t, env)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		mAdmins := new(repoMocks.MockAdminRepository)
		svc := NewAdminService(mAdmins, bcrypt.MinCost)

		mAdmins.On("FindByEmail", ctx, "nobody@shelter.org").Return(nil, sql.ErrNoRows)

		env, err := svc.Login(ctx, "nobody@shelter.org", "secret1")

		assert.Nil(t, env)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
