package records

import "time"

// Entry es una entrada de la historia clínica de un token.
// Inmutable una vez agregada. Seq es la posición 1-based dentro de la
// secuencia append-only del token. CID es un handle opaco al content
// store: el core solo exige que no esté vacío, nunca inspecciona bytes.
type Entry struct {
	TokenID uint64
	Seq     int

	CID  string
	Note string

	AddedBy    string
	RecordedAt time.Time
}
