package ports

import "context"

// Transactor runs fn inside a single store transaction. Repository calls made
// with the ctx handed to fn join that transaction; if fn returns an error every
// write made through it is rolled back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
