package tokens

import "time"

// Token representa un record-token de historia clínica.
// ID es un entero monotónico asignado en el mint (arranca en 1,
// nunca se reusa). Owner es la address actual; puede cambiar por
// transfer, nunca queda vacío.
type Token struct {
	ID    uint64
	Owner string

	MintedBy string
	MintedAt time.Time
}
