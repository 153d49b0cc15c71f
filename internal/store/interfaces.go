package store

import "context"

// Collection is a named durable slot holding an ordered sequence of records.
// Save replaces the stored contents wholesale; there are no partial writes.
// Implementations are single-writer and last-write-wins.
type Collection[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, records []T) error
}
