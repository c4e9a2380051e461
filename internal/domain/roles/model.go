package roles

import "time"

// Role es el conjunto cerrado de roles del sistema.
// recorder es el personal clínico autorizado a escribir historias.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleRecorder      Role = "recorder"
)

// IsValid valida contra el conjunto cerrado. No hay roles dinámicos.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdministrator, RoleRecorder:
		return true
	}
	return false
}

// Assignment representa (address, role) en la tabla de asignaciones.
type Assignment struct {
	Role    Role
	Address string

	GrantedBy string
	CreatedAt time.Time
}
