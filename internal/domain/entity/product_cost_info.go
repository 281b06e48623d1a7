package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCostInfo vista derivada (no persistida) del costo de un producto,
// calculada siempre sobre los lotes activos actuales (CurrentQuantity > 0).
// Invariante: si TotalQuantity == 0, AverageCost == 0 y las fechas son nil.
type ProductCostInfo struct {
	ProductID     string
	AverageCost   decimal.Decimal // media ponderada por cantidad del costo unitario
	TotalQuantity decimal.Decimal
	LotCount      int
	OldestLotDate *time.Time
	NewestLotDate *time.Time
}
