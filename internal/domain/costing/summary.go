package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// Summarize deriva la vista de costo de un producto a partir de sus lotes
// actuales. Solo cuentan los lotes activos (CurrentQuantity > 0); los agotados
// son historial de costo y no pesan en el promedio.
//
// AverageCost = Σ(costoUnitario_i × cantidadActual_i) / Σ cantidadActual_i.
// Sin lotes activos: promedio 0 y fechas nil ("sin stock" es un estado válido).
func Summarize(productID string, lots []*entity.InventoryLot) *entity.ProductCostInfo {
	info := &entity.ProductCostInfo{
		ProductID:     productID,
		AverageCost:   decimal.Zero,
		TotalQuantity: decimal.Zero,
	}

	weightedCost := decimal.Zero
	for _, lot := range lots {
		if !lot.CurrentQuantity.IsPositive() {
			continue
		}
		info.LotCount++
		info.TotalQuantity = info.TotalQuantity.Add(lot.CurrentQuantity)
		weightedCost = weightedCost.Add(lot.UnitCost.Mul(lot.CurrentQuantity))

		received := lot.ReceivedDate
		if info.OldestLotDate == nil || received.Before(*info.OldestLotDate) {
			oldest := received
			info.OldestLotDate = &oldest
		}
		if info.NewestLotDate == nil || received.After(*info.NewestLotDate) {
			newest := received
			info.NewestLotDate = &newest
		}
	}

	if info.TotalQuantity.IsPositive() {
		info.AverageCost = weightedCost.Div(info.TotalQuantity)
	}
	return info
}
