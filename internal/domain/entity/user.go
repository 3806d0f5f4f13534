package entity

import "time"

// Roles de la aplicación. El middleware RBAC decide con estos valores.
const (
	RoleAdmin   = "admin"   // acceso total, incluida la administración de usuarios
	RoleManager = "manager" // puede crear y editar clientes, ofertas y tareas
	RoleUser    = "user"    // solo lectura
)

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleUser
}

// User usuario de la aplicación (autenticación y RBAC).
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	Enabled      bool
	Locked       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
