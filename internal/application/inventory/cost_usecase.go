package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// CostQueryUseCase camino de solo lectura sobre el ledger de lotes: costo
// promedio ponderado, vista agregada y listados. Sin caché: siempre se
// recalcula a partir de los lotes actuales, así la vista no puede divergir
// del ledger.
type CostQueryUseCase struct {
	lotRepo         repository.LotRepository
	consumptionRepo repository.ConsumptionRepository
}

// NewCostQueryUseCase construye el caso de uso (repos atados al pool, sin tx).
func NewCostQueryUseCase(lotRepo repository.LotRepository, consumptionRepo repository.ConsumptionRepository) *CostQueryUseCase {
	return &CostQueryUseCase{lotRepo: lotRepo, consumptionRepo: consumptionRepo}
}

// AverageCost devuelve el costo promedio ponderado por cantidad sobre los
// lotes activos del producto. Sin stock devuelve 0 (estado válido, no error).
func (uc *CostQueryUseCase) AverageCost(ctx context.Context, productID string) (decimal.Decimal, error) {
	lots, err := uc.lotRepo.ListActiveByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("listar lotes activos: %w", err)
	}
	return costing.Summarize(productID, lots).AverageCost, nil
}

// CostInfo devuelve la vista agregada de costo del producto: promedio, cantidad
// total, número de lotes activos y rango de fechas de recepción.
func (uc *CostQueryUseCase) CostInfo(ctx context.Context, productID string) (*entity.ProductCostInfo, error) {
	lots, err := uc.lotRepo.ListActiveByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("listar lotes activos: %w", err)
	}
	return costing.Summarize(productID, lots), nil
}

// ListLots lista los lotes del producto en orden FIFO. Con activeOnly solo
// devuelve los que tienen existencias.
func (uc *CostQueryUseCase) ListLots(ctx context.Context, productID string, activeOnly bool) ([]*entity.InventoryLot, error) {
	if activeOnly {
		return uc.lotRepo.ListActiveByProduct(ctx, productID)
	}
	return uc.lotRepo.ListByProduct(ctx, productID)
}

// ListConsumptions lista el historial de consumos del producto (auditoría).
func (uc *CostQueryUseCase) ListConsumptions(ctx context.Context, productID string, page dto.PageRequest) ([]*entity.LotConsumption, error) {
	page.DefaultPage()
	return uc.consumptionRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
}
