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

// ConsumeUseCase agota lotes de un producto en orden estricto FIFO
// (el más antiguo primero) dentro de una sola transacción.
//
// Serialización por producto: los lotes activos se leen con FOR UPDATE, de
// modo que dos consumos concurrentes del mismo producto se procesan como una
// secuencia de operaciones completas y no pueden sobrevender por lost update.
// Consumos de productos distintos no compiten entre sí.
type ConsumeUseCase struct {
	txRunner TxRunner
}

// NewConsumeUseCase construye el caso de uso.
func NewConsumeUseCase(txRunner TxRunner) *ConsumeUseCase {
	return &ConsumeUseCase{txRunner: txRunner}
}

// Consume aplica el consumo FIFO y registra la auditoría (de qué lotes se
// tomó y cuánto). Todo o nada: si el stock total disponible no alcanza, falla
// con domain.ErrInsufficientStock y ningún lote queda modificado.
//
// Errores:
//   - domain.ErrInvalidQuantity   si Quantity ≤ 0 o falta el producto (antes de leer el ledger).
//   - domain.ErrInsufficientStock si Σ CurrentQuantity de los lotes activos < Quantity.
func (uc *ConsumeUseCase) Consume(ctx context.Context, in dto.ConsumeRequest) (*dto.ConsumeResponse, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	purpose := strings.TrimSpace(in.Purpose)
	if purpose == "" {
		purpose = entity.ConsumptionPurposeAdjustment
	}

	now := time.Now()
	consumption := &entity.LotConsumption{
		ID:         uuid.New().String(),
		ProductID:  productID,
		Quantity:   in.Quantity,
		Purpose:    purpose,
		ConsumedAt: now,
		CreatedAt:  now,
	}

	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		consumptionRepo repository.ConsumptionRepository,
	) error {
		// FOR UPDATE: bloquea los lotes activos del producto hasta el commit.
		lots, err := lotRepo.ListActiveForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		draws, err := costing.PlanConsumption(lots, in.Quantity)
		if err != nil {
			return err
		}
		for _, draw := range draws {
			if err := lotRepo.DecrementQuantity(ctx, draw.LotID, draw.Quantity); err != nil {
				return err
			}
			consumption.Entries = append(consumption.Entries, entity.LotConsumptionEntry{
				ID:            uuid.New().String(),
				ConsumptionID: consumption.ID,
				LotID:         draw.LotID,
				Quantity:      draw.Quantity,
				UnitCost:      draw.UnitCost,
			})
		}
		consumption.TotalCost = costing.TotalCost(draws)
		return consumptionRepo.Create(ctx, consumption)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ConsumeResponse{
		ConsumptionID: consumption.ID,
		ProductID:     productID,
		Quantity:      in.Quantity,
		Purpose:       purpose,
		TotalCost:     consumption.TotalCost,
		ConsumedAt:    now,
		Draws:         make([]dto.LotDrawDTO, 0, len(consumption.Entries)),
	}
	for _, e := range consumption.Entries {
		resp.Draws = append(resp.Draws, dto.LotDrawDTO{
			LotID:    e.LotID,
			Quantity: e.Quantity,
			UnitCost: e.UnitCost,
		})
	}
	return resp, nil
}
