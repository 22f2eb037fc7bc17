package ports

// RequestContext identidad del llamador y preferencias de la petición.
// Sustituye al contexto ambiental de transacción: se pasa explícitamente a cada caso de uso.
type RequestContext struct {
	UserID    string
	CompanyID string
	ShopID    string
	// PriceListID fuerza una tarifa para el cálculo de precios; vacío = reglas por defecto.
	PriceListID string
}
