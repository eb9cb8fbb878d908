package entity

import "time"

// User usuario del punto de venta.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcrypt
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
