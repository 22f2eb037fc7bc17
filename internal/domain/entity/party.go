package entity

import "time"

// Party representa un tercero (cliente) de la empresa.
// SalePriceListID es opcional; si está definida tiene prioridad sobre la tarifa de la tienda.
type Party struct {
	ID              string
	CompanyID       string
	Name            string
	TaxID           string // NIT o Cédula
	Email           string
	SalePriceListID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
