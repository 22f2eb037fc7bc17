package entity

import "time"

// Company representa una organización/tenant del sistema.
type Company struct {
	ID         string
	Name       string
	NIT        string
	CurrencyID string // moneda por defecto de la empresa
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
