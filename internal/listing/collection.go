// Package listing is the generic list flow shared by collection endpoints:
// scope, per-field filters, ordering, pagination and serialization over a
// storage-backed collection.
package listing

import "context"

// Op is a comparison operator a Collection must support on a named field.
type Op string

const (
	OpEq       Op = "="
	OpLt       Op = "<"
	OpLte      Op = "<="
	OpGt       Op = ">"
	OpGte      Op = ">="
	OpContains Op = "contains"
)

// Collection is the queryable-collection contract the storage collaborator
// provides. Where and OrderBy derive a narrower collection and must not
// mutate the receiver; all reads go through Count and Slice.
type Collection[T any] interface {
	Where(field string, op Op, value any) Collection[T]
	OrderBy(field string, desc bool) Collection[T]
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, offset, limit int) ([]T, error)
}
