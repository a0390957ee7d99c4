package repository

import "context"

// Package repository contains data access layer abstractions.
// Implementations can live in subpackages (e.g., postgres) inside this directory.

// DefaultLimit is the page size applied when the caller does not provide one.
const DefaultLimit = 10

// Crud defines the entity-agnostic persistence operations shared by every
// entity. No business logic here — strictly persistence.
type Crud[T any] interface {
	// FindAll returns a page of records matching the equality filters, plus
	// the total row count for the filter regardless of page.
	FindAll(ctx context.Context, filters map[string]any, page PageQuery) (*PageResult[T], error)

	// FindByID returns a record by its primary key. Missing rows surface as
	// sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*T, error)

	// Create inserts a new record and returns the stored row (including
	// values set by the database, e.g. the generated primary key).
	Create(ctx context.Context, rec *T) (*T, error)

	// Update applies a partial patch to a record and returns the updated
	// row. Missing rows surface as sql.ErrNoRows. Patch keys outside the
	// entity's updatable column set are ignored.
	Update(ctx context.Context, id int64, patch map[string]any) (*T, error)

	// Delete removes a record by primary key and reports whether a row was
	// actually removed.
	Delete(ctx context.Context, id int64) (bool, error)
}

// PageQuery holds page-number pagination parameters.
type PageQuery struct {
	Page  int
	Limit int
}

// Normalize converts absent or non-positive page/limit to the defaults
// (page 1, limit 10).
func (p PageQuery) Normalize() PageQuery {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

// Offset returns the number of rows to skip for this page.
func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
