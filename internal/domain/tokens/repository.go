package tokens

import "context"

type Repository interface {
	// Mint persiste el token asignando el próximo ID (incremento
	// atómico, nunca read-then-write en dos pasos).
	Mint(ctx context.Context, t Token) (Token, error)
	GetByID(ctx context.Context, id uint64) (Token, error)
	// SetOwner actualiza la relación de ownership y el índice
	// owner -> tokens en la misma transición.
	SetOwner(ctx context.Context, id uint64, owner string) error
	// ListByOwner usa el índice secundario owner -> tokens; nunca
	// barre la tabla entera.
	ListByOwner(ctx context.Context, owner string) ([]Token, error)
}
