package records

import "context"

type Repository interface {
	// Append persiste la entrada asignando el próximo Seq del token
	// (1-based, sin huecos) en la misma transición.
	Append(ctx context.Context, e Entry) (Entry, error)
	// ListByToken devuelve la secuencia completa en orden Seq asc.
	ListByToken(ctx context.Context, tokenID uint64) ([]Entry, error)
	CountByToken(ctx context.Context, tokenID uint64) (int, error)
}
