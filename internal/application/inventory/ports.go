package inventory

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el procesamiento de
// entregas y el consumo FIFO: o se aplican todos los cambios o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		consumptionRepo repository.ConsumptionRepository,
	) error) error
}

// ValuationPDFGenerator genera el reporte PDF de valoración de inventario de
// un producto (vista de costo + lotes activos).
type ValuationPDFGenerator interface {
	GenerateValuationPDF(
		ctx context.Context,
		info *entity.ProductCostInfo,
		lots []*entity.InventoryLot,
	) ([]byte, error)
}
