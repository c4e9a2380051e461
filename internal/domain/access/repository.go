package access

import "context"

type Repository interface {
	// Upsert inserta o pisa el grant para (TokenID, Viewer).
	Upsert(ctx context.Context, g Grant) error
	// Get devuelve ErrNotFound si el grant no existe; cualquier otro
	// error es una falla de storage, no ausencia.
	Get(ctx context.Context, tokenID uint64, viewer string) (Grant, error)
	// Delete elimina el grant por completo (equivale a nunca haberlo
	// otorgado). Devuelve false si no existía.
	Delete(ctx context.Context, tokenID uint64, viewer string) (bool, error)
	ListByToken(ctx context.Context, tokenID uint64) ([]Grant, error)
}
