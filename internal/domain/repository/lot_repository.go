package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// LotRepository define el puerto de persistencia del ledger de lotes.
// Es la única superficie de mutación de CurrentQuantity: ni el procesador de
// entregas ni el motor de consumo tocan el almacenamiento por fuera de él.
//
// El orden FIFO es received_date ASC con desempate por created_at y por id,
// para que el recorrido sea determinista.
type LotRepository interface {
	// CreateBatch persiste todos los lotes de una entrega. Todo o nada:
	// la atomicidad la garantiza la transacción del caller (TxRunner).
	CreateBatch(ctx context.Context, lots []*entity.InventoryLot) error
	GetByID(ctx context.Context, id string) (*entity.InventoryLot, error)
	// ListByProduct lista todos los lotes del producto (incluye agotados) en orden FIFO.
	ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryLot, error)
	// ListActiveByProduct lista los lotes con CurrentQuantity > 0 en orden FIFO.
	ListActiveByProduct(ctx context.Context, productID string) ([]*entity.InventoryLot, error)
	// ListActiveForUpdate igual que ListActiveByProduct pero bloqueando las filas
	// (SELECT FOR UPDATE). Serializa el consumo por producto; usar solo dentro de una tx.
	ListActiveForUpdate(ctx context.Context, productID string) ([]*entity.InventoryLot, error)
	// DecrementQuantity resta qty de CurrentQuantity del lote indicado.
	DecrementQuantity(ctx context.Context, lotID string, qty decimal.Decimal) error
	// RegisterDelivery marca orderID como procesada (compare-and-create).
	// Devuelve domain.ErrOrderAlreadyProcessed si ya existía.
	RegisterDelivery(ctx context.Context, orderID string, lotCount int) error
	// DeliveryProcessed indica si la orden ya generó lotes.
	DeliveryProcessed(ctx context.Context, orderID string) (bool, error)
}
