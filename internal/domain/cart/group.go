package cart

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salecart-api/internal/domain"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

// GroupItem datos que se trasladan de una línea de carrito a la línea de pedido.
type GroupItem struct {
	CartLineID string
	ProductID  string
	UnitPrice  decimal.Decimal
	Quantity   decimal.Decimal
}

// Group líneas de un mismo tercero en el orden en que se encontraron.
type Group struct {
	PartyID string
	Items   []GroupItem
}

// Grouping resultado de agrupar una selección de líneas.
// LineIDs son las líneas no finalizadas que pasarán a done.
type Grouping struct {
	Groups  []Group
	LineIDs []string
}

// GroupByParty omite las líneas done, exige tercero en el resto y agrupa por tercero.
// Los grupos siguen el orden de primera aparición del tercero; dentro de cada grupo
// se conserva el orden de las líneas. Si alguna línea no tiene tercero devuelve
// *domain.MissingPartyError y ningún grupo.
func GroupByParty(lines []*entity.CartLine) (*Grouping, error) {
	index := make(map[string]int)
	out := &Grouping{}
	for _, l := range lines {
		if l == nil || l.IsDone() {
			continue
		}
		if l.PartyID == "" {
			return nil, &domain.MissingPartyError{CartLineID: l.ID}
		}
		i, ok := index[l.PartyID]
		if !ok {
			i = len(out.Groups)
			index[l.PartyID] = i
			out.Groups = append(out.Groups, Group{PartyID: l.PartyID})
		}
		out.Groups[i].Items = append(out.Groups[i].Items, GroupItem{
			CartLineID: l.ID,
			ProductID:  l.ProductID,
			UnitPrice:  l.UnitPrice,
			Quantity:   l.Quantity,
		})
		out.LineIDs = append(out.LineIDs, l.ID)
	}
	return out, nil
}
