package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"shelterapi/internal/model"
	"shelterapi/internal/repository"
	"shelterapi/internal/storage"
)

// ErrReaderNil is returned by UploadPhoto when no content reader is given.
var ErrReaderNil = errors.New("reader is nil")

// photoURLExpiry bounds how long a presigned photo link stays valid.
const photoURLExpiry = 15 * time.Minute

// PhotoLink is the payload returned by PhotoURL.
type PhotoLink struct {
	URL string `json:"url"`
}

// PetService adds the adopter-scoped listing and photo handling on top of
// the generic CRUD operations.
type PetService interface {
	CrudService[model.Pet]

	// ListByAdopter lists every pet referencing the adopter.
	ListByAdopter(ctx context.Context, adopterID int64) (*Envelope, error)

	// UploadPhoto stores the pet's photo in object storage, records its key
	// on the pet row, and rolls back the object if the record update fails.
	// originalFilename is used only to keep the extension.
	UploadPhoto(ctx context.Context, id int64, r io.Reader, originalFilename, contentType string, size int64) (*Envelope, error)

	// PhotoURL returns a time-limited download link for the pet's photo.
	PhotoURL(ctx context.Context, id int64) (*Envelope, error)
}

type petService struct {
	CrudService[model.Pet]
	pets  repository.PetRepository
	store storage.Storage
}

// NewPetService constructs the pets service.
func NewPetService(pets repository.PetRepository, store storage.Storage, cost int) PetService {
	return &petService{
		CrudService: NewCrudService[model.Pet](pets, petDescriptor(), cost),
		pets:        pets,
		store:       store,
	}
}

func (s *petService) ListByAdopter(ctx context.Context, adopterID int64) (*Envelope, error) {
	pets, err := s.pets.FindByAdopterID(ctx, adopterID)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		StatusCode: http.StatusOK,
		Message:    "records retrieved successfully.",
		Data:       pets,
	}, nil
}

func (s *petService) UploadPhoto(ctx context.Context, id int64, r io.Reader, originalFilename, contentType string, size int64) (*Envelope, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	pet, err := s.pets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "pet", ID: id}
		}
		return nil, err
	}

	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("pets", uuid.New().String()+ext))

	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	updated, err := s.pets.Update(ctx, id, map[string]any{"photo_path": key})
	if err != nil {
		// Rollback: remove the freshly stored object.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("record photo failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("record photo failed: %w", err)
	}

	// Best effort: the replaced photo object is no longer referenced.
	if pet.PhotoPath != "" && pet.PhotoPath != key {
		_ = s.store.Delete(ctx, pet.PhotoPath)
	}

	return &Envelope{
		StatusCode: http.StatusOK,
		Message:    fmt.Sprintf("photo for pet %d uploaded successfully.", id),
		Data:       *updated,
	}, nil
}

func (s *petService) PhotoURL(ctx context.Context, id int64) (*Envelope, error) {
	pet, err := s.pets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "pet", ID: id}
		}
		return nil, err
	}
	if pet.PhotoPath == "" {
		return nil, &NotFoundError{Resource: "photo for pet", ID: id}
	}

	u, err := s.store.PresignGet(ctx, pet.PhotoPath, photoURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign photo: %w", err)
	}

	return &Envelope{
		StatusCode: http.StatusOK,
		Message:    fmt.Sprintf("photo for pet %d retrieved successfully.", id),
		Data:       PhotoLink{URL: u},
	}, nil
}
