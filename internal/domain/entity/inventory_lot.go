package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLot representa un lote de compra de un producto: una recepción a un
// costo unitario fijo (precio de compra + flete asignado por unidad).
//
// Ciclo de vida: lo crea el procesador de entregas (una vez, por línea de la
// entrega) y solo el motor de consumo decrementa CurrentQuantity. Un lote
// agotado (CurrentQuantity == 0) nunca se borra: queda como historial de costo.
type InventoryLot struct {
	ID                 string
	ProductID          string
	SupplierOrderID    string // opcional: entrega que originó el lote
	OriginalQuantity   decimal.Decimal
	CurrentQuantity    decimal.Decimal // invariante: 0 <= CurrentQuantity <= OriginalQuantity
	PurchasePrice      decimal.Decimal
	FreightCostPerUnit decimal.Decimal
	UnitCost           decimal.Decimal // costo aterrizado = PurchasePrice + FreightCostPerUnit
	LotNumber          string          // opcional, descriptivo
	Notes              string          // opcional, descriptivo
	ReceivedDate       time.Time       // define el orden FIFO
	ExpiryDate         *time.Time      // informativo
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsDepleted indica si el lote ya no tiene existencias.
func (l *InventoryLot) IsDepleted() bool {
	return !l.CurrentQuantity.IsPositive()
}
