package entity

import "time"

// Shop tienda de venta: aporta tarifa y moneda por defecto a los carritos.
type Shop struct {
	ID          string
	CompanyID   string
	Name        string
	PriceListID string
	CurrencyID  string // moneda de comercio electrónico; vacía = moneda de la empresa
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
