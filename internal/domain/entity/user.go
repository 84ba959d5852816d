package entity

import "time"

// Roles válidos para User. ADMIN y POWER pueden registrar stock, aprobar y
// rechazar emisiones (y auto-aprobar las propias); USER solo solicita;
// VIEWER solo consulta.
const (
	RoleAdmin  = "ADMIN"
	RolePower  = "POWER"
	RoleUser   = "USER"
	RoleViewer = "VIEWER"
)

// ValidRole indica si el rol es uno de los permitidos.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RolePower, RoleUser, RoleViewer:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // ADMIN, POWER, USER, VIEWER
	CreatedAt    time.Time
}

// Actor es la capacidad "actor con rol" que reciben los casos de uso del
// núcleo. El rol llega ya resuelto (del token JWT); el núcleo nunca consulta
// ni almacena credenciales.
type Actor struct {
	ID   string
	Name string
	Role string
}

// CanApprove indica si el actor puede aprobar/rechazar emisiones y registrar
// stock (también habilita la auto-aprobación de sus propias solicitudes).
func (a Actor) CanApprove() bool {
	return a.Role == RoleAdmin || a.Role == RolePower
}
