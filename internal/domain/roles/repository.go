package roles

import "context"

type Repository interface {
	// Put agrega la asignación. Devuelve false si ya existía (idempotente).
	Put(ctx context.Context, a Assignment) (bool, error)
	// Delete quita la asignación. Devuelve false si no existía.
	Delete(ctx context.Context, role Role, address string) (bool, error)
	Has(ctx context.Context, role Role, address string) (bool, error)
	CountByRole(ctx context.Context, role Role) (int, error)
}
