package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User representa un miembro del equipo de ventas (pertenece a una Organization).
// ExternalID es la identidad estable emitida por el proveedor de identidad (claim sub);
// ventas y reuniones referencian al usuario por ese valor.
type User struct {
	ID             string
	OrganizationID string
	ExternalID     string
	Email          string
	PasswordHash   string // solo para cuentas locales (seed); vacío si la identidad es externa
	Name           string
	Role           string // admin, employee
	IsActive       bool
	JoinDate       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin informa si el usuario tiene rol de administrador.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// NormalizeRole traduce el claim de rol del proveedor a un rol válido.
// Todo lo que no sea admin se considera employee.
func NormalizeRole(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), RoleAdmin) {
		return RoleAdmin
	}
	return RoleEmployee
}
