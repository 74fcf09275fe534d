package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleCliente = "cliente"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User usuario de la tienda.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive cuenta activa y habilitada.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
