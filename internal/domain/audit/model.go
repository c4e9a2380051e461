package audit

import "time"

// Action identifica el tipo de cambio auditado.
type Action string

const (
	ActionRoleGrant     Action = "role.grant"
	ActionRoleRevoke    Action = "role.revoke"
	ActionAccessGrant   Action = "access.grant"
	ActionAccessRevoke  Action = "access.revoke"
	ActionTokenMint     Action = "token.mint"
	ActionTokenTransfer Action = "token.transfer"
)

// Event es un registro append-only de una mutación del sistema,
// pensado para monitoreo externo. Nunca se edita ni se borra.
type Event struct {
	ID string

	Action Action
	Actor  string // quien ejecutó la operación

	Subject string // address o rol afectado
	TokenID *uint64
	Detail  string

	CreatedAt time.Time
}
