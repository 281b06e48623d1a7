package costing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// LotDraw una toma planificada sobre un lote concreto.
type LotDraw struct {
	LotID    string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// TotalCost devuelve el costo total del plan (Σ cantidad × costo unitario).
func TotalCost(draws []LotDraw) decimal.Decimal {
	total := decimal.Zero
	for _, d := range draws {
		total = total.Add(d.Quantity.Mul(d.UnitCost))
	}
	return total
}

// PlanConsumption calcula el plan FIFO para consumir qty unidades sobre los
// lotes dados: recorre los lotes del más antiguo al más nuevo tomando
// min(pendiente, disponible) de cada uno. No muta los lotes; aplica el plan
// quien lo ejecuta, dentro de su transacción.
//
// Si la suma disponible es menor que qty devuelve domain.ErrInsufficientStock
// y ningún plan: la operación debe fallar completa, sin consumo parcial.
func PlanConsumption(lots []*entity.InventoryLot, qty decimal.Decimal) ([]LotDraw, error) {
	if !qty.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}

	// Orden defensivo: el repositorio ya entrega en orden FIFO, pero el plan no
	// debe depender de ello. Estable para preservar el desempate por creación.
	ordered := make([]*entity.InventoryLot, len(lots))
	copy(ordered, lots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ReceivedDate.Before(ordered[j].ReceivedDate)
	})

	available := decimal.Zero
	for _, lot := range ordered {
		available = available.Add(lot.CurrentQuantity)
	}
	if available.LessThan(qty) {
		return nil, domain.ErrInsufficientStock
	}

	remaining := qty
	draws := make([]LotDraw, 0, len(ordered))
	for _, lot := range ordered {
		if remaining.IsZero() {
			break
		}
		if !lot.CurrentQuantity.IsPositive() {
			continue
		}
		take := decimal.Min(remaining, lot.CurrentQuantity)
		draws = append(draws, LotDraw{
			LotID:    lot.ID,
			Quantity: take,
			UnitCost: lot.UnitCost,
		})
		remaining = remaining.Sub(take)
	}
	return draws, nil
}
