package repository

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// ConsumptionRepository define el puerto de persistencia del registro de
// auditoría de consumos FIFO.
type ConsumptionRepository interface {
	// Create persiste el consumo con sus entradas por lote (misma tx que los decrementos).
	Create(ctx context.Context, consumption *entity.LotConsumption) error
	// ListByProduct lista los consumos de un producto, del más reciente al más antiguo.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.LotConsumption, error)
}
