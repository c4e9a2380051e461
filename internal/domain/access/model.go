package access

import "time"

// Grant autoriza a Viewer a leer la historia del token hasta ExpiresAt.
// ExpiresAt == nil significa acceso indefinido. Único por
// (TokenID, Viewer): un nuevo grant pisa el expiry anterior.
type Grant struct {
	ID string

	TokenID uint64
	Viewer  string

	GrantedBy string // owner al momento del grant
	ExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// live responde si el grant autoriza lectura en el instante now.
// La expiración es pasiva: se chequea al leer, nunca se barre.
func (g Grant) live(now time.Time) bool {
	if g.ExpiresAt == nil {
		return true
	}
	return now.Before(*g.ExpiresAt)
}
