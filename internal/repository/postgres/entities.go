package postgres

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"shelterapi/internal/model"
	"shelterapi/internal/repository"
)

// Per-entity mappers. Each entity keeps its own primary-key column name, the
// way the database schema defines it.

var shelterMapper = Mapper[model.Shelter]{
	Table:    "shelters",
	IDColumn: "id_shelter",
	Columns:  []string{"name", "email", "phone", "registered_at"},
	Args: func(s *model.Shelter) []any {
		return []any{s.Name, s.Email, s.Phone, s.RegisteredAt}
	},
	Dest: func(s *model.Shelter) []any {
		return []any{&s.ID, &s.Name, &s.Email, &s.Phone, &s.RegisteredAt}
	},
	Filters: map[string]string{
		"name":  "name",
		"email": "email",
		"phone": "phone",
	},
	Updatable: map[string]string{
		"name":  "name",
		"email": "email",
		"phone": "phone",
	},
}

var addressMapper = Mapper[model.Address]{
	Table:    "addresses",
	IDColumn: "id_address",
	Columns:  []string{"street", "number", "city", "state", "shelter_id"},
	Args: func(a *model.Address) []any {
		return []any{a.Street, a.Number, a.City, a.State, a.ShelterID}
	},
	Dest: func(a *model.Address) []any {
		return []any{&a.ID, &a.Street, &a.Number, &a.City, &a.State, &a.ShelterID}
	},
	Filters: map[string]string{
		"city":       "city",
		"state":      "state",
		"shelter_id": "shelter_id",
	},
	Updatable: map[string]string{
		"street": "street",
		"number": "number",
		"city":   "city",
		"state":  "state",
	},
}

var adopterMapper = Mapper[model.Adopter]{
	Table:    "adopters",
	IDColumn: "id_adopter",
	Columns:  []string{"name", "email", "phone", "password", "registered_at"},
	Args: func(a *model.Adopter) []any {
		return []any{a.Name, a.Email, a.Phone, a.Password, a.RegisteredAt}
	},
	Dest: func(a *model.Adopter) []any {
		return []any{&a.ID, &a.Name, &a.Email, &a.Phone, &a.Password, &a.RegisteredAt}
	},
	Filters: map[string]string{
		"name":  "name",
		"email": "email",
		"phone": "phone",
	},
	Updatable: map[string]string{
		"name":     "name",
		"email":    "email",
		"phone":    "phone",
		"password": "password",
	},
}

var petMapper = Mapper[model.Pet]{
	Table:    "pets",
	IDColumn: "id_pet",
	Columns:  []string{"name", "birth_date", "adopter_id", "photo_path"},
	Args: func(p *model.Pet) []any {
		return []any{p.Name, p.BirthDate, p.AdopterID, p.PhotoPath}
	},
	Dest: func(p *model.Pet) []any {
		return []any{&p.ID, &p.Name, &p.BirthDate, &p.AdopterID, &p.PhotoPath}
	},
	Filters: map[string]string{
		"name":       "name",
		"adopter_id": "adopter_id",
	},
	Updatable: map[string]string{
		"name":       "name",
		"birth_date": "birth_date",
		"adopter_id": "adopter_id",
		"photo_path": "photo_path",
	},
}

var adminMapper = Mapper[model.Admin]{
	Table:    "admins",
	IDColumn: "id_admin",
	Columns:  []string{"name", "email", "password"},
	Args: func(a *model.Admin) []any {
		return []any{a.Name, a.Email, a.Password}
	},
	Dest: func(a *model.Admin) []any {
		return []any{&a.ID, &a.Name, &a.Email, &a.Password}
	},
	Filters: map[string]string{
		"name":  "name",
		"email": "email",
	},
	Updatable: map[string]string{
		"name":     "name",
		"email":    "email",
		"password": "password",
	},
}

// NewShelterPostgres creates the shelters repository.
func NewShelterPostgres(db *sql.DB) *Crud[model.Shelter] {
	return NewCrud(db, shelterMapper)
}

// NewAddressPostgres creates the addresses repository.
func NewAddressPostgres(db *sql.DB) *Crud[model.Address] {
	return NewCrud(db, addressMapper)
}

// AdopterPostgres is the adopters repository, extending the generic CRUD
// with an email lookup.
type AdopterPostgres struct {
	*Crud[model.Adopter]
}

// NewAdopterPostgres creates the adopters repository.
func NewAdopterPostgres(db *sql.DB) *AdopterPostgres {
	return &AdopterPostgres{Crud: NewCrud(db, adopterMapper)}
}

var _ repository.AdopterRepository = (*AdopterPostgres)(nil)

// FindByEmail fetches a single adopter by email.
func (r *AdopterPostgres) FindByEmail(ctx context.Context, email string) (*model.Adopter, error) {
	return findByEmail(ctx, r.db, r.m, email)
}

// PetPostgres is the pets repository, extending the generic CRUD with an
// adopter-scoped listing.
type PetPostgres struct {
	*Crud[model.Pet]
}

// NewPetPostgres creates the pets repository.
func NewPetPostgres(db *sql.DB) *PetPostgres {
	return &PetPostgres{Crud: NewCrud(db, petMapper)}
}

var _ repository.PetRepository = (*PetPostgres)(nil)

// FindByAdopterID lists every pet referencing the adopter.
func (r *PetPostgres) FindByAdopterID(ctx context.Context, adopterID int64) ([]model.Pet, error) {
	q, args, err := psql.Select(r.m.selectColumns()...).
		From(r.m.Table).
		Where(sq.Eq{"adopter_id": adopterID}).
		OrderBy(r.m.IDColumn + " ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pets := make([]model.Pet, 0)
	for rows.Next() {
		var p model.Pet
		if err := rows.Scan(r.m.Dest(&p)...); err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

// AdminPostgres is the admins repository, extending the generic CRUD with an
// email lookup used by the login flow.
type AdminPostgres struct {
	*Crud[model.Admin]
}

// NewAdminPostgres creates the admins repository.
func NewAdminPostgres(db *sql.DB) *AdminPostgres {
	return &AdminPostgres{Crud: NewCrud(db, adminMapper)}
}

var _ repository.AdminRepository = (*AdminPostgres)(nil)

// FindByEmail fetches a single admin by email.
func (r *AdminPostgres) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return findByEmail(ctx, r.db, r.m, email)
}

// findByEmail is shared by every entity that carries an email column.
func findByEmail[T any](ctx context.Context, db *sql.DB, m Mapper[T], email string) (*T, error) {
	q, args, err := psql.Select(m.selectColumns()...).
		From(m.Table).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rec T
	if err := db.QueryRowContext(ctx, q, args...).Scan(m.Dest(&rec)...); err != nil {
		return nil, err
	}
	return &rec, nil
}
