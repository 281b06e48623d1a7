package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Propósitos de consumo conocidos. Purpose es una etiqueta de auditoría:
// no afecta al algoritmo y se aceptan valores libres.
const (
	ConsumptionPurposeSale       = "SALE"
	ConsumptionPurposeAdjustment = "ADJUSTMENT"
	ConsumptionPurposeWaste      = "WASTE"
)

// LotConsumption es el registro de auditoría de una salida FIFO: de qué lotes
// se tomó y cuánto de cada uno. Se persiste junto con los decrementos en la
// misma transacción.
type LotConsumption struct {
	ID         string
	ProductID  string
	Quantity   decimal.Decimal
	Purpose    string
	TotalCost  decimal.Decimal // Σ(cantidad tomada × costo unitario del lote)
	Entries    []LotConsumptionEntry
	ConsumedAt time.Time
	CreatedAt  time.Time
}

// LotConsumptionEntry una toma sobre un lote concreto.
type LotConsumptionEntry struct {
	ID            string
	ConsumptionID string
	LotID         string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal // costo unitario del lote al momento de la toma
}
