package content

import "context"

// Store es la frontera con el content store (IPFS o similar).
// Recibe bytes y devuelve un CID estable. Sin delete, sin update,
// sin control de acceso propio: el store es public-read por construcción.
type Store interface {
	Store(ctx context.Context, data []byte, mimeType string) (string, error)
}
