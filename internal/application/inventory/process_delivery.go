package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// ProcessDeliveryUseCase convierte una entrega completada de proveedor en
// lotes de inventario: reparte el flete entre las líneas en proporción a su
// valor de compra y crea un lote por línea, todo en una sola transacción.
//
// Idempotencia: una misma orden nunca genera lotes dos veces. El registro de
// la orden en lot_deliveries es un compare-and-create; si la orden ya fue
// procesada (o dos llamadas compiten), la segunda falla con
// domain.ErrOrderAlreadyProcessed y no se crea lote alguno.
type ProcessDeliveryUseCase struct {
	txRunner TxRunner
}

// NewProcessDeliveryUseCase construye el caso de uso.
func NewProcessDeliveryUseCase(txRunner TxRunner) *ProcessDeliveryUseCase {
	return &ProcessDeliveryUseCase{txRunner: txRunner}
}

// ProcessDelivery valida la entrega, calcula el flete por unidad y persiste
// los lotes como un batch atómico.
//
// Errores:
//   - domain.ErrOrderNotFound         si la orden referenciada no se puede resolver (ID en blanco).
//   - domain.ErrInvalidDelivery       si las líneas son inválidas (vacías, cantidad ≤ 0, precio < 0).
//   - domain.ErrOrderAlreadyProcessed si la orden ya generó lotes.
func (uc *ProcessDeliveryUseCase) ProcessDelivery(ctx context.Context, in dto.ProcessDeliveryRequest) (*dto.ProcessDeliveryResponse, error) {
	orderID := strings.TrimSpace(in.OrderID)
	if orderID == "" {
		return nil, domain.ErrOrderNotFound
	}
	if len(in.Lines) == 0 || in.ShippingCost.IsNegative() {
		return nil, domain.ErrInvalidDelivery
	}

	lines := make([]costing.DeliveryLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.ProductID == "" || !l.Quantity.IsPositive() || l.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidDelivery
		}
		lines = append(lines, costing.DeliveryLine{
			ProductID:     l.ProductID,
			Quantity:      l.Quantity,
			PurchasePrice: l.PurchasePrice,
			LotNumber:     l.LotNumber,
			Notes:         l.Notes,
		})
	}

	freightPerUnit := costing.AllocateFreight(lines, in.ShippingCost)

	now := time.Now()
	receivedDate := now
	if in.DeliveredAt != nil {
		receivedDate = *in.DeliveredAt
	}

	lots := make([]*entity.InventoryLot, 0, len(lines))
	for i, line := range lines {
		lots = append(lots, &entity.InventoryLot{
			ID:                 uuid.New().String(),
			ProductID:          line.ProductID,
			SupplierOrderID:    orderID,
			OriginalQuantity:   line.Quantity,
			CurrentQuantity:    line.Quantity,
			PurchasePrice:      line.PurchasePrice,
			FreightCostPerUnit: freightPerUnit[i],
			UnitCost:           line.PurchasePrice.Add(freightPerUnit[i]),
			LotNumber:          line.LotNumber,
			Notes:              line.Notes,
			ReceivedDate:       receivedDate,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}

	// Transacción: registrar la orden (compare-and-create) y crear los lotes.
	// Commit o Rollback completos; la creación parcial corrompería el historial de costos.
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		_ repository.ConsumptionRepository,
	) error {
		processed, err := lotRepo.DeliveryProcessed(ctx, orderID)
		if err != nil {
			return err
		}
		if processed {
			return domain.ErrOrderAlreadyProcessed
		}
		// Respaldo contra la carrera entre el check y el insert: la PK de
		// lot_deliveries convierte al perdedor en ErrOrderAlreadyProcessed.
		if err := lotRepo.RegisterDelivery(ctx, orderID, len(lots)); err != nil {
			return err
		}
		return lotRepo.CreateBatch(ctx, lots)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ProcessDeliveryResponse{
		OrderID:      orderID,
		ReceivedDate: receivedDate,
		ShippingCost: in.ShippingCost,
		Lots:         make([]dto.CreatedLotDTO, 0, len(lots)),
	}
	for _, lot := range lots {
		resp.Lots = append(resp.Lots, dto.CreatedLotDTO{
			LotID:              lot.ID,
			ProductID:          lot.ProductID,
			Quantity:           lot.OriginalQuantity,
			PurchasePrice:      lot.PurchasePrice,
			FreightCostPerUnit: lot.FreightCostPerUnit,
			UnitCost:           lot.UnitCost,
		})
	}
	return resp, nil
}
