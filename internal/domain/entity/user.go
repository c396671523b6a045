package entity

import "strings"

// Role rol de la sesión, decidido por el servidor.
type Role string

// Roles válidos para la sesión.
const (
	RoleShopkeeper  Role = "shopkeeper"
	RoleDistributor Role = "distributor"
	RoleSalesperson Role = "salesperson"
	RoleAdmin       Role = "admin"
	RoleNone        Role = ""
)

// ParseRole normaliza el rol recibido. Cualquier valor desconocido se trata como RoleNone
// para que nunca otorgue acceso.
func ParseRole(s string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleShopkeeper, RoleDistributor, RoleSalesperson, RoleAdmin:
		return r
	default:
		return RoleNone
	}
}

// CanSignIn indica si el rol se puede elegir en el formulario de login/registro.
func (r Role) CanSignIn() bool {
	return r == RoleShopkeeper || r == RoleDistributor || r == RoleSalesperson
}

// SessionUser usuario autenticado tal como lo devuelve /auth/me.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Normalized devuelve una copia con el rol saneado.
func (u SessionUser) Normalized() SessionUser {
	u.Role = ParseRole(string(u.Role))
	return u
}

// Registration datos de alta de una cuenta.
type Registration struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Role             Role   `json:"role,omitempty"`
	OrganizationName string `json:"organizationName,omitempty"`
}

// LoginResult respuesta de /auth/login.
type LoginResult struct {
	User       SessionUser `json:"user"`
	LinkStatus *LinkStatus `json:"salespersonLinkStatus,omitempty"`
}

// Distributor entrada del listado público de distribuidores.
type Distributor struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	OrganizationName string `json:"organizationName,omitempty"`
	CreatedAt        string `json:"createdAt"`
}

// Profile perfil editable del usuario.
type Profile struct {
	ID               string `json:"id,omitempty"`
	Email            string `json:"email,omitempty"`
	Role             string `json:"role,omitempty"`
	Name             string `json:"name,omitempty"`
	OrganizationName string `json:"organizationName,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	Photo            string `json:"photo,omitempty"`
}

// ProfileUpdate actualización parcial del perfil (nil = sin cambio).
type ProfileUpdate struct {
	Name             *string `json:"name,omitempty"`
	OrganizationName *string `json:"organizationName,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Address          *string `json:"address,omitempty"`
	Photo            *string `json:"photo,omitempty"`
}
