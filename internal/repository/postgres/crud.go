package postgres

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"shelterapi/internal/repository"
)

// psql builds queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Mapper describes how an entity maps onto its table: the table and
// primary-key column, the insertable columns, accessors producing insert
// arguments and scan destinations in column order, and the whitelists of
// filterable and updatable columns keyed by their JSON field name.
type Mapper[T any] struct {
	Table    string
	IDColumn string
	// Columns are the insertable columns, excluding the primary key.
	Columns []string
	// Args returns insert values in Columns order.
	Args func(*T) []any
	// Dest returns scan destinations for IDColumn followed by Columns.
	Dest func(*T) []any
	// Filters maps allowed query-filter names to columns. Unknown filter
	// keys are ignored.
	Filters map[string]string
	// Updatable maps allowed patch keys to columns. Unknown patch keys are
	// ignored.
	Updatable map[string]string
}

func (m Mapper[T]) selectColumns() []string {
	return append([]string{m.IDColumn}, m.Columns...)
}

// Crud is a PostgreSQL implementation of repository.Crud for any entity
// described by a Mapper. It uses database/sql with parameterized queries and
// contains no business logic.
type Crud[T any] struct {
	db *sql.DB
	m  Mapper[T]
}

// NewCrud creates a generic CRUD repository for the mapped entity.
func NewCrud[T any](db *sql.DB, m Mapper[T]) *Crud[T] {
	return &Crud[T]{db: db, m: m}
}

// where translates the free-form filter map into an equality predicate over
// whitelisted columns.
func (r *Crud[T]) where(filters map[string]any) sq.Eq {
	eq := sq.Eq{}
	for key, val := range filters {
		if col, ok := r.m.Filters[key]; ok {
			eq[col] = val
		}
	}
	return eq
}

// FindAll returns one page of rows matching the filters plus the total count.
func (r *Crud[T]) FindAll(ctx context.Context, filters map[string]any, page repository.PageQuery) (*repository.PageResult[T], error) {
	page = page.Normalize()
	pred := r.where(filters)

	countB := psql.Select("COUNT(*)").From(r.m.Table)
	listB := psql.Select(r.m.selectColumns()...).From(r.m.Table)
	if len(pred) > 0 {
		countB = countB.Where(pred)
		listB = listB.Where(pred)
	}

	countQ, countArgs, err := countB.ToSql()
	if err != nil {
		return nil, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return nil, err
	}

	listQ, listArgs, err := listB.
		OrderBy(r.m.IDColumn + " ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, listQ, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var rec T
		if err := rows.Scan(r.m.Dest(&rec)...); err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[T]{Items: items, Total: total}, nil
}

// FindByID fetches a single row by primary key.
func (r *Crud[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	q, args, err := psql.Select(r.m.selectColumns()...).
		From(r.m.Table).
		Where(sq.Eq{r.m.IDColumn: id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rec T
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(r.m.Dest(&rec)...); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts a new row and returns the stored record.
func (r *Crud[T]) Create(ctx context.Context, rec *T) (*T, error) {
	q, args, err := psql.Insert(r.m.Table).
		Columns(r.m.Columns...).
		Values(r.m.Args(rec)...).
		Suffix("RETURNING " + strings.Join(r.m.selectColumns(), ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	var out T
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(r.m.Dest(&out)...); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies the whitelisted patch keys to a row and returns the updated
// record. A patch with no recognized keys degrades to a plain lookup.
func (r *Crud[T]) Update(ctx context.Context, id int64, patch map[string]any) (*T, error) {
	b := psql.Update(r.m.Table).Where(sq.Eq{r.m.IDColumn: id})

	touched := 0
	for key, val := range patch {
		if col, ok := r.m.Updatable[key]; ok {
			b = b.Set(col, val)
			touched++
		}
	}
	if touched == 0 {
		return r.FindByID(ctx, id)
	}

	q, args, err := b.Suffix("RETURNING " + strings.Join(r.m.selectColumns(), ", ")).ToSql()
	if err != nil {
		return nil, err
	}

	var out T
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(r.m.Dest(&out)...); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a row by primary key and reports whether a row was removed.
func (r *Crud[T]) Delete(ctx context.Context, id int64) (bool, error) {
	q, args, err := psql.Delete(r.m.Table).Where(sq.Eq{r.m.IDColumn: id}).ToSql()
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
