package cart

import (
	"fmt"

	"github.com/jhoicas/salecart-api/internal/domain"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

// Nombres de campo de CartLine usados por las reglas.
const (
	FieldShop      = "shop"
	FieldCartDate  = "cart_date"
	FieldParty     = "party"
	FieldProduct   = "product"
	FieldQuantity  = "quantity"
	FieldUnitPrice = "unit_price"
	FieldCurrency  = "currency"
	FieldState     = "state"
)

// FieldRule describe cuándo un campo es editable, si es obligatorio y qué dominio debe cumplir.
type FieldRule struct {
	EditableWhen func(state string) bool
	Required     bool
	Domain       func(p *entity.Product) bool
}

func draftOnly(state string) bool { return state == entity.CartStateDraft }

func never(string) bool { return false }

func salable(p *entity.Product) bool { return p != nil && p.Salable }

// FieldRules reglas de todos los campos editables de CartLine.
var FieldRules = map[string]FieldRule{
	FieldShop:      {EditableWhen: draftOnly, Required: true},
	FieldCartDate:  {EditableWhen: draftOnly, Required: true},
	FieldParty:     {EditableWhen: draftOnly},
	FieldProduct:   {EditableWhen: draftOnly, Required: true, Domain: salable},
	FieldQuantity:  {EditableWhen: draftOnly, Required: true},
	FieldUnitPrice: {EditableWhen: draftOnly, Required: true},
	FieldCurrency:  {EditableWhen: draftOnly, Required: true},
	FieldState:     {EditableWhen: never, Required: true},
}

// CanEdit indica si el campo puede modificarse en el estado dado.
func CanEdit(field, state string) bool {
	rule, ok := FieldRules[field]
	if !ok || rule.EditableWhen == nil {
		return false
	}
	return rule.EditableWhen(state)
}

// Validate comprueba obligatorios, dominio del producto y cantidad positiva.
// Devuelve un error que envuelve domain.ErrInvalidInput (o ErrProductNotSalable) con el campo.
func Validate(line *entity.CartLine, product *entity.Product) error {
	present := map[string]bool{
		FieldShop:      line.ShopID != "",
		FieldCartDate:  !line.CartDate.IsZero(),
		FieldParty:     line.PartyID != "",
		FieldProduct:   line.ProductID != "",
		FieldQuantity:  !line.Quantity.IsZero(),
		FieldUnitPrice: true, // cero es un precio válido
		FieldCurrency:  line.CurrencyID != "",
		FieldState:     line.State != "",
	}
	for _, field := range fieldOrder {
		rule := FieldRules[field]
		if rule.Required && !present[field] {
			return fmt.Errorf("%s requerido: %w", field, domain.ErrInvalidInput)
		}
	}
	if line.Quantity.IsNegative() {
		return fmt.Errorf("%s debe ser positiva: %w", FieldQuantity, domain.ErrInvalidInput)
	}
	if rule := FieldRules[FieldProduct]; rule.Domain != nil && !rule.Domain(product) {
		return fmt.Errorf("%s: %w", FieldProduct, domain.ErrProductNotSalable)
	}
	return nil
}

// fieldOrder orden estable de validación para mensajes deterministas.
var fieldOrder = []string{
	FieldShop, FieldCartDate, FieldParty, FieldProduct,
	FieldQuantity, FieldUnitPrice, FieldCurrency, FieldState,
}
