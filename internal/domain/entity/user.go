package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleSeller   = "vendedor"
	RoleDelivery = "repartidor"
)

// User representa un usuario del sistema (panel administrativo y API).
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt
	Role         string // "admin" | "vendedor" | "repartidor"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
