package dto

import "time"

// CreateUserRequest payload para crear un usuario (solo admin).
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // vacío = user
}

// UpdateUserRequest payload para actualizar un usuario. Campos nil no se tocan.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ChangeRoleRequest payload para cambiar el rol de un usuario.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// SetEnabledRequest payload para habilitar o deshabilitar una cuenta.
type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// SetLockedRequest payload para bloquear o desbloquear una cuenta.
type SetLockedRequest struct {
	Locked bool `json:"locked"`
}

// UserResponse vista pública del usuario. Nunca expone el hash de password.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Enabled   bool      `json:"enabled"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
