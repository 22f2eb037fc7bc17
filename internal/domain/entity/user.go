package entity

import "time"

// User representa un usuario del sistema (pertenece a una Company y opcionalmente a una Shop).
type User struct {
	ID           string
	CompanyID    string
	ShopID       string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
