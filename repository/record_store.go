package repository

import (
	"context"
	"errors"
)

var (
	// ErrUnknownTable is returned for tables outside the catalog schema.
	ErrUnknownTable = errors.New("unknown table")
	// ErrUnknownColumn is returned for columns the table does not define.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrInvalidValue is returned when a value cannot be coerced to its column type.
	ErrInvalidValue = errors.New("invalid value")
	// ErrNotFound is returned when an update or delete matches no row.
	ErrNotFound = errors.New("record not found")
)

// Op is a filter comparison operator
type Op string

const (
	OpEq  Op = "eq"
	OpNeq Op = "neq"
	OpIn  Op = "in"
	OpGte Op = "gte"
	OpLte Op = "lte"
)

// Filter restricts a query to rows whose Column compares to Value by Op.
// For OpIn, Value must be a slice.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Eq is shorthand for an equality filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// In is shorthand for a membership filter.
func In(column string, values any) Filter {
	return Filter{Column: column, Op: OpIn, Value: values}
}

// Sort orders query results by Column.
type Sort struct {
	Column string
	Desc   bool
}

// Asc is shorthand for an ascending sort.
func Asc(column string) Sort { return Sort{Column: column} }

// Desc is shorthand for a descending sort.
func Desc(column string) Sort { return Sort{Column: column, Desc: true} }

// RecordStore is the generic table store the catalog and admin screens work
// against. Each call is atomic on its own; there are no multi-call
// transactions.
type RecordStore interface {
	Query(ctx context.Context, table string, filters []Filter, sort []Sort) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	Update(ctx context.Context, table string, id string, patch Row) error
	Delete(ctx context.Context, table string, id string) error
}
