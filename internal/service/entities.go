package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"shelterapi/internal/model"
	"shelterapi/internal/password"
	"shelterapi/internal/repository"
	"shelterapi/internal/validation"
)

// Entity descriptors: each declares its resource name, secret fields and
// validator set. The generic service consumes these as plain configuration.

func shelterDescriptor() Descriptor[model.Shelter] {
	return Descriptor[model.Shelter]{
		Name: "shelter",
		Validate: func(s *model.Shelter) validation.Errors {
			var errs validation.Errors
			validation.Name("name", s.Name, &errs)
			validation.Email("email", s.Email, &errs)
			validation.Phone("phone", s.Phone, &errs)
			validation.Date("registered_at", s.RegisteredAt, &errs)
			return errs
		},
		ValidatePatch: func(patch map[string]any) validation.Errors {
			var errs validation.Errors
			if v, ok := patchString(patch, "name"); ok {
				validation.Name("name", v, &errs)
			}
			if v, ok := patchString(patch, "email"); ok {
				validation.Email("email", v, &errs)
			}
			if v, ok := patchString(patch, "phone"); ok {
				validation.Phone("phone", v, &errs)
			}
			return errs
		},
	}
}

func addressDescriptor() Descriptor[model.Address] {
	return Descriptor[model.Address]{
		Name: "address",
		Validate: func(a *model.Address) validation.Errors {
			var errs validation.Errors
			validation.Name("street", a.Street, &errs)
			validation.Name("number", a.Number, &errs)
			validation.Name("city", a.City, &errs)
			if a.ShelterID <= 0 {
				errs.Add(`field "shelter_id" is required.`)
			}
			return errs
		},
		ValidatePatch: func(patch map[string]any) validation.Errors {
			var errs validation.Errors
			for _, field := range []string{"street", "number", "city"} {
				if v, ok := patchString(patch, field); ok {
					validation.Name(field, v, &errs)
				}
			}
			return errs
		},
	}
}

func adopterDescriptor() Descriptor[model.Adopter] {
	return Descriptor[model.Adopter]{
		Name: "adopter",
		Secrets: []SecretField[model.Adopter]{{
			Get: func(a *model.Adopter) string { return a.Password },
			Set: func(a *model.Adopter, v string) { a.Password = v },
		}},
		SecretKeys: []string{"password"},
		Validate: func(a *model.Adopter) validation.Errors {
			var errs validation.Errors
			validation.Name("name", a.Name, &errs)
			validation.Email("email", a.Email, &errs)
			validation.Phone("phone", a.Phone, &errs)
			validation.Password("password", a.Password, &errs)
			validation.Date("registered_at", a.RegisteredAt, &errs)
			return errs
		},
		ValidatePatch: func(patch map[string]any) validation.Errors {
			var errs validation.Errors
			if v, ok := patchString(patch, "name"); ok {
				validation.Name("name", v, &errs)
			}
			if v, ok := patchString(patch, "email"); ok {
				validation.Email("email", v, &errs)
			}
			if v, ok := patchString(patch, "phone"); ok {
				validation.Phone("phone", v, &errs)
			}
			if v, ok := patchString(patch, "password"); ok {
				validation.Password("password", v, &errs)
			}
			return errs
		},
	}
}

func petDescriptor() Descriptor[model.Pet] {
	return Descriptor[model.Pet]{
		Name: "pet",
		Validate: func(p *model.Pet) validation.Errors {
			var errs validation.Errors
			validation.Name("name", p.Name, &errs)
			validation.Date("birth_date", p.BirthDate, &errs)
			return errs
		},
		ValidatePatch: func(patch map[string]any) validation.Errors {
			var errs validation.Errors
			if v, ok := patchString(patch, "name"); ok {
				validation.Name("name", v, &errs)
			}
			if v, ok := patchString(patch, "birth_date"); ok {
				validation.DateString("birth_date", v, &errs)
			}
			return errs
		},
	}
}

func adminDescriptor() Descriptor[model.Admin] {
	return Descriptor[model.Admin]{
		Name: "admin",
		Secrets: []SecretField[model.Admin]{{
			Get: func(a *model.Admin) string { return a.Password },
			Set: func(a *model.Admin, v string) { a.Password = v },
		}},
		SecretKeys: []string{"password"},
		Validate: func(a *model.Admin) validation.Errors {
			var errs validation.Errors
			validation.Name("name", a.Name, &errs)
			validation.Email("email", a.Email, &errs)
			validation.Password("password", a.Password, &errs)
			return errs
		},
		ValidatePatch: func(patch map[string]any) validation.Errors {
			var errs validation.Errors
			if v, ok := patchString(patch, "name"); ok {
				validation.Name("name", v, &errs)
			}
			if v, ok := patchString(patch, "email"); ok {
				validation.Email("email", v, &errs)
			}
			if v, ok := patchString(patch, "password"); ok {
				validation.Password("password", v, &errs)
			}
			return errs
		},
	}
}

// patchString extracts a patch value as a string. Present-but-non-string
// values come back empty so the field's validator rejects them.
func patchString(patch map[string]any, key string) (string, bool) {
	v, ok := patch[key]
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, true
}

// NewShelterService constructs the shelters service.
func NewShelterService(repo repository.ShelterRepository, cost int) CrudService[model.Shelter] {
	return NewCrudService[model.Shelter](repo, shelterDescriptor(), cost)
}

// NewAddressService constructs the addresses service.
func NewAddressService(repo repository.AddressRepository, cost int) CrudService[model.Address] {
	return NewCrudService[model.Address](repo, addressDescriptor(), cost)
}

// AdopterService adds the email lookup and the referenced-pets delete guard
// on top of the generic CRUD operations.
type AdopterService interface {
	CrudService[model.Adopter]

	// FindByEmail returns the adopter with the given email, or nil when
	// absent. The record is unsanitized; it is for internal auth use only.
	FindByEmail(ctx context.Context, email string) (*model.Adopter, error)
}

type adopterService struct {
	CrudService[model.Adopter]
	adopters repository.AdopterRepository
	pets     repository.PetRepository
}

// NewAdopterService constructs the adopters service.
func NewAdopterService(adopters repository.AdopterRepository, pets repository.PetRepository, cost int) AdopterService {
	return &adopterService{
		CrudService: NewCrudService[model.Adopter](adopters, adopterDescriptor(), cost),
		adopters:    adopters,
		pets:        pets,
	}
}

// Remove rejects deletion with a conflict while any pet still references the
// adopter. The schema's ON DELETE RESTRICT backs this up at the storage
// layer.
func (s *adopterService) Remove(ctx context.Context, id int64) (*Envelope, error) {
	referencing, err := s.pets.FindByAdopterID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(referencing) > 0 {
		return nil, &ConflictError{
			Message: fmt.Sprintf("adopter %d still has %d adopted pet(s) and cannot be removed.", id, len(referencing)),
		}
	}
	return s.CrudService.Remove(ctx, id)
}

func (s *adopterService) FindByEmail(ctx context.Context, email string) (*model.Adopter, error) {
	a, err := s.adopters.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// AdminService adds the login flow on top of the generic CRUD operations.
type AdminService interface {
	CrudService[model.Admin]

	// Login verifies the email/password pair and returns the sanitized
	// admin, or ErrInvalidCredentials.
	Login(ctx context.Context, email, plain string) (*Envelope, error)

	// FindByEmail returns the admin with the given email, or nil when
	// absent. The record is unsanitized; it is for internal auth use only.
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
}

type adminService struct {
	CrudService[model.Admin]
	admins repository.AdminRepository
}

// NewAdminService constructs the admins service.
func NewAdminService(admins repository.AdminRepository, cost int) AdminService {
	return &adminService{
		CrudService: NewCrudService[model.Admin](admins, adminDescriptor(), cost),
		admins:      admins,
	}
}

func (s *adminService) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	a, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (s *adminService) Login(ctx context.Context, email, plain string) (*Envelope, error) {
	admin, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil || !password.Verify(admin.Password, plain) {
		return nil, ErrInvalidCredentials
	}

	out := *admin
	out.Password = ""
	return &Envelope{
		StatusCode: http.StatusOK,
		Message:    "login successful.",
		Data:       out,
	}, nil
}
