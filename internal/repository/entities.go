package repository

import (
	"context"

	"shelterapi/internal/model"
)

// Per-entity repository interfaces. Most entities need nothing beyond the
// generic Crud operations; the ones below add a bespoke query each.

// ShelterRepository persists shelters.
type ShelterRepository = Crud[model.Shelter]

// AddressRepository persists shelter addresses.
type AddressRepository = Crud[model.Address]

// AdopterRepository persists adopters.
type AdopterRepository interface {
	Crud[model.Adopter]

	// FindByEmail returns the adopter with the given email, or sql.ErrNoRows.
	FindByEmail(ctx context.Context, email string) (*model.Adopter, error)
}

// PetRepository persists pets.
type PetRepository interface {
	Crud[model.Pet]

	// FindByAdopterID lists every pet currently referencing the adopter.
	// Used to guard adopter deletion against dangling references.
	FindByAdopterID(ctx context.Context, adopterID int64) ([]model.Pet, error)
}

// AdminRepository persists back-office admins.
type AdminRepository interface {
	Crud[model.Admin]

	// FindByEmail returns the admin with the given email, or sql.ErrNoRows.
	// Used by the login flow.
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
}
