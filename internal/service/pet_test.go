package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shelterapi/internal/model"
	repoMocks "shelterapi/internal/repository/mocks"
	"shelterapi/internal/storage"
	storeMocks "shelterapi/internal/storage/mocks"
)

func TestPetService_ListByAdopter(t *testing.T) {
	ctx := context.Background()
	mPets := new(repoMocks.MockPetRepository)
	svc := NewPetService(mPets, nil, bcrypt.MinCost)

	adopterID := int64(3)
	mPets.On("FindByAdopterID", ctx, adopterID).
		Return([]model.Pet{{ID: 1, Name: "Rex", AdopterID: &adopterID}}, nil)

	env, err := svc.ListByAdopter(ctx, adopterID)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.Len(t, env.Data.([]model.Pet), 1)
	mPets.AssertExpectations(t)
}

func TestPetService_UploadPhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mPets := new(repoMocks.MockPetRepository)
		mStore := new(storeMocks.MockStorage)
		svc := NewPetService(mPets, mStore, bcrypt.MinCost)

		r := strings.NewReader("image bytes")
		mPets.On("FindByID", ctx, int64(1)).Return(&model.Pet{ID: 1, Name: "Rex"}, nil)
		mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "pets/") && strings.HasSuffix(key, ".jpg")
		}), r, mock.Anything).Return(storage.ObjectInfo{}, nil)
		mPets.On("Update", ctx, int64(1), mock.MatchedBy(func(patch map[string]any) bool {
			key, _ := patch["photo_path"].(string)
			return strings.HasPrefix(key, "pets/")
		})).Return(&model.Pet{ID: 1, Name: "Rex", PhotoPath: "pets/x.jpg"}, nil)

		env, err := svc.UploadPhoto(ctx, 1, r, "rex.jpg", "image/jpeg", 11)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, env.StatusCode)
		mPets.AssertExpectations(t)
		mStore.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		mPets := new(repoMocks.MockPetRepository)
		svc := NewPetService(mPets, nil, bcrypt.MinCost)

		_, err := svc.UploadPhoto(ctx, 1, nil, "rex.jpg", "image/jpeg", 0)

		assert.ErrorIs(t, err, ErrReaderNil)
	})

	t.Run("missing pet", func(t *testing.T) {
		mPets := new(repoMocks.MockPetRepository)
		svc := NewPetService(mPets, nil, bcrypt.MinCost)

		mPets.On("FindByID", ctx, int64(42)).Return(nil, sql.ErrNoRows)

		_, err := svc.UploadPhoto(ctx, 42, strings.NewReader("x"), "rex.jpg", "image/jpeg", 1)

		var nf *NotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("record failure rolls the object back", func(t *testing.T) {
		mPets := new(repoMocks.MockPetRepository)
		mStore := new(storeMocks.MockStorage)
		svc := NewPetService(mPets, mStore, bcrypt.MinCost)

		r := strings.NewReader("image bytes")
		mPets.On("FindByID", ctx, int64(1)).Return(&model.Pet{ID: 1}, nil)
		mStore.On("Put", ctx, mock.Anything, r, mock.Anything).Return(storage.ObjectInfo{}, nil)
		mPets.On("Update", ctx, int64(1), mock.Anything).Return(nil, errors.New("db fail"))
		mStore.On("Delete", ctx, mock.Anything).Return(nil)

		_, err := svc.UploadPhoto(ctx, 1, r, "rex.jpg", "image/jpeg", 11)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "record photo failed")
		mStore.AssertCalled(t, "Delete", ctx, mock.Anything)
	})
}

func TestPetService_PhotoURL(t *testing.T) {
	ctx := context.Background()

	t.Run("presigns the stored key", func(t *testing.T) {
		mPets := new(repoMocks.MockPetRepository)
		mStore := new(storeMocks.MockStorage)
		svc := NewPetService(mPets, mStore, bcrypt.MinCost)

		mPets.On("FindByID", ctx, int64(1)).
			Return(&model.Pet{ID: 1, PhotoPath: "pets/x.jpg"}, nil)
		mStore.On("PresignGet", ctx, "pets/x.jpg", photoURLExpiry).
			Return("https://storage.example/pets/x.jpg?sig=abc", nil)

		env, err := svc.PhotoURL(ctx, 1)

		require.NoError(t, err)
		link := env.Data.(PhotoLink)
		assert.Contains(t, link.URL, "pets/x.jpg")
	})

	t.Run("pet without photo", func(t *testing.T) {
		mPets := new(repoMocks.MockPetRepository)
		svc := NewPetService(mPets, nil, bcrypt.MinCost)

		mPets.On("FindByID", ctx, int64(1)).Return(&model.Pet{ID: 1}, nil)

		_, err := svc.PhotoURL(ctx, 1)

		var nf *NotFoundError
		assert.ErrorAs(t, err, &nf)
	})
}
