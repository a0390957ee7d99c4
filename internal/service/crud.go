package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"shelterapi/internal/password"
	"shelterapi/internal/repository"
	"shelterapi/internal/validation"
)

// SecretField declares one secret-carrying field of an entity through typed
// accessors. Secrets are hashed before every write and blanked on every
// read; which fields qualify is declared here per entity, never discovered
// by sniffing field names at runtime.
type SecretField[T any] struct {
	Get func(*T) string
	Set func(*T, string)
}

// Descriptor is the entity-capability configuration the generic service is
// parameterized with: resource name for messages, secret fields, and the
// entity's validator set. Entity differences stay data, not subclasses.
type Descriptor[T any] struct {
	// Name is the singular resource name used in envelope messages.
	Name string
	// Secrets lists the entity's secret fields.
	Secrets []SecretField[T]
	// SecretKeys lists the patch keys holding secrets in partial updates.
	SecretKeys []string
	// Validate runs the entity's validators against a full payload.
	Validate func(*T) validation.Errors
	// ValidatePatch validates whichever recognized fields a partial payload
	// carries.
	ValidatePatch func(map[string]any) validation.Errors
}

// CrudService orchestrates repository, validators and password handling for
// one entity, wrapping every result in the uniform envelope.
type CrudService[T any] interface {
	FindAll(ctx context.Context, filters map[string]any, page repository.PageQuery) (*Envelope, error)
	FindOne(ctx context.Context, id int64) (*Envelope, error)
	Create(ctx context.Context, rec *T) (*Envelope, error)
	Update(ctx context.Context, id int64, patch map[string]any) (*Envelope, error)
	Remove(ctx context.Context, id int64) (*Envelope, error)
}

type crudService[T any] struct {
	repo repository.Crud[T]
	desc Descriptor[T]
	cost int
}

// NewCrudService constructs the generic service for one entity. cost is the
// bcrypt cost factor applied to secret fields.
func NewCrudService[T any](repo repository.Crud[T], desc Descriptor[T], cost int) CrudService[T] {
	return &crudService[T]{repo: repo, desc: desc, cost: cost}
}

// sanitize returns a copy of rec with every secret field blanked. The input
// is never mutated.
func (s *crudService[T]) sanitize(rec T) T {
	for _, sec := range s.desc.Secrets {
		sec.Set(&rec, "")
	}
	return rec
}

// hashSecrets replaces every non-empty secret field of rec with its bcrypt
// hash, in place.
func (s *crudService[T]) hashSecrets(rec *T) error {
	for _, sec := range s.desc.Secrets {
		plain := sec.Get(rec)
		if plain == "" {
			continue
		}
		h, err := password.Hash(plain, s.cost)
		if err != nil {
			return err
		}
		sec.Set(rec, h)
	}
	return nil
}

// hashPatchSecrets hashes the secret keys present in a partial update.
func (s *crudService[T]) hashPatchSecrets(patch map[string]any) error {
	for _, key := range s.desc.SecretKeys {
		v, ok := patch[key]
		if !ok {
			continue
		}
		plain, ok := v.(string)
		if !ok || plain == "" {
			continue
		}
		h, err := password.Hash(plain, s.cost)
		if err != nil {
			return err
		}
		patch[key] = h
	}
	return nil
}

func (s *crudService[T]) FindAll(ctx context.Context, filters map[string]any, page repository.PageQuery) (*Envelope, error) {
	page = page.Normalize()

	res, err := s.repo.FindAll(ctx, filters, page)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(res.Items))
	for _, rec := range res.Items {
		items = append(items, s.sanitize(rec))
	}

	return &Envelope{
		StatusCode: http.StatusOK,
		Message:    "records retrieved successfully.",
		Data:       items,
		Pagination: &Pagination{Total: res.Total, Limit: page.Limit, Page: page.Page},
	}, nil
}

func (s *crudService[T]) FindOne(ctx context.Context, id int64) (*Envelope, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: s.desc.Name, ID: id}
		}
		return nil, err
	}

	return &Envelope{
		StatusCode: http.StatusOK,
		Message:    fmt.Sprintf("%s %d retrieved successfully.", s.desc.Name, id),
		Data:       s.sanitize(*rec),
	}, nil
}

func (s *crudService[T]) Create(ctx context.Context, rec *T) (*Envelope, error) {
	if s.desc.Validate != nil {
		if errs := s.desc.Validate(rec); len(errs) > 0 {
			return nil, &ValidationError{Messages: errs}
		}
	}
	if err := s.hashSecrets(rec); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	return &Envelope{
		StatusCode: http.StatusCreated,
		Message:    fmt.Sprintf("%s created successfully.", s.desc.Name),
		Data:       s.sanitize(*created),
	}, nil
}

func (s *crudService[T]) Update(ctx context.Context, id int64, patch map[string]any) (*Envelope, error) {
	if s.desc.ValidatePatch != nil {
		if errs := s.desc.ValidatePatch(patch); len(errs) > 0 {
			return nil, &ValidationError{Messages: errs}
		}
	}
	if err := s.hashPatchSecrets(patch); err != nil {
		return nil, err
	}

	if _, err := s.repo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: s.desc.Name, ID: id}
		}
		return nil, &PersistenceError{Err: err}
	}

	// Success carries no data payload.
	return &Envelope{
		StatusCode: http.StatusOK,
		Message:    fmt.Sprintf("%s %d updated successfully.", s.desc.Name, id),
	}, nil
}

func (s *crudService[T]) Remove(ctx context.Context, id int64) (*Envelope, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, &NotFoundError{Resource: s.desc.Name, ID: id}
	}

	return &Envelope{
		StatusCode: http.StatusOK,
		Message:    fmt.Sprintf("%s %d removed successfully.", s.desc.Name, id),
	}, nil
}
