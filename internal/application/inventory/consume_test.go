package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del consumo FIFO contra el ledger en memoria.
//
// Escenario de referencia: dos lotes de P3, día 1 con 5 unidades a 10.00 y
// día 2 con 5 unidades a 12.00. Consumir 7 toma 5 del lote del día 1 (queda
// en 0) y 2 del día 2 (quedan 3); el costo es 5×10 + 2×12 = 74.00 y el
// promedio resultante 12.00 (solo sobrevive el lote del día 2).
// ──────────────────────────────────────────────────────────────────────────────

func sembrarLote(t *testing.T, store *memory.Store, id, productID string, day int, qty, unitCost string) {
	t.Helper()
	received := time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
	err := store.LotRepository().CreateBatch(context.Background(), []*entity.InventoryLot{{
		ID:               id,
		ProductID:        productID,
		OriginalQuantity: dec(qty),
		CurrentQuantity:  dec(qty),
		PurchasePrice:    dec(unitCost),
		UnitCost:         dec(unitCost),
		ReceivedDate:     received,
		CreatedAt:        received,
		UpdatedAt:        received,
	}})
	require.NoError(t, err)
}

func TestConsume_FIFODosLotes(t *testing.T) {
	store := memory.NewStore()
	sembrarLote(t, store, "L1", "P3", 1, "5", "10.00")
	sembrarLote(t, store, "L2", "P3", 2, "5", "12.00")

	uc := inventory.NewConsumeUseCase(store)
	resp, err := uc.Consume(context.Background(), dto.ConsumeRequest{
		ProductID: "P3",
		Quantity:  dec("7"),
		Purpose:   entity.ConsumptionPurposeSale,
	})
	require.NoError(t, err)

	require.Len(t, resp.Draws, 2, "7 unidades deben salir de dos lotes")
	assert.Equal(t, "L1", resp.Draws[0].LotID, "el lote más antiguo se agota primero")
	assert.True(t, dec("5").Equal(resp.Draws[0].Quantity))
	assert.Equal(t, "L2", resp.Draws[1].LotID)
	assert.True(t, dec("2").Equal(resp.Draws[1].Quantity))
	assert.True(t, dec("74.00").Equal(resp.TotalCost),
		"costo total: esperado 74.00, obtenido %s", resp.TotalCost)

	// El lote del día 1 queda agotado, el del día 2 con 3 unidades.
	lots, err := store.LotRepository().ListActiveByProduct(context.Background(), "P3")
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "L2", lots[0].ID)
	assert.True(t, dec("3").Equal(lots[0].CurrentQuantity))
}

func TestConsume_PromedioTrasConsumo(t *testing.T) {
	store := memory.NewStore()
	sembrarLote(t, store, "L1", "P3", 1, "5", "10.00")
	sembrarLote(t, store, "L2", "P3", 2, "5", "12.00")

	consume := inventory.NewConsumeUseCase(store)
	_, err := consume.Consume(context.Background(), dto.ConsumeRequest{ProductID: "P3", Quantity: dec("7")})
	require.NoError(t, err)

	costos := inventory.NewCostQueryUseCase(store.LotRepository(), store.ConsumptionRepository())
	avg, err := costos.AverageCost(context.Background(), "P3")
	require.NoError(t, err)
	assert.True(t, dec("12.00").Equal(avg),
		"solo queda el lote del día 2: el promedio debe ser su costo unitario")
}

func TestConsume_StockInsuficienteNoModifica(t *testing.T) {
	store := memory.NewStore()
	sembrarLote(t, store, "L1", "P3", 1, "5", "10.00")
	sembrarLote(t, store, "L2", "P3", 2, "5", "12.00")

	uc := inventory.NewConsumeUseCase(store)
	_, err := uc.Consume(context.Background(), dto.ConsumeRequest{ProductID: "P3", Quantity: dec("11")})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Todo-o-nada: ningún lote pudo haberse decrementado.
	lots, err := store.LotRepository().ListActiveByProduct(context.Background(), "P3")
	require.NoError(t, err)
	require.Len(t, lots, 2)
	for _, lot := range lots {
		assert.True(t, dec("5").Equal(lot.CurrentQuantity),
			"lote %s: la cantidad no debe cambiar tras un consumo fallido", lot.ID)
	}
}

func TestConsume_CantidadInvalida(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewConsumeUseCase(store)
	ctx := context.Background()

	_, err := uc.Consume(ctx, dto.ConsumeRequest{ProductID: "P3", Quantity: decimal.Zero})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.Consume(ctx, dto.ConsumeRequest{ProductID: "P3", Quantity: dec("-2")})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.Consume(ctx, dto.ConsumeRequest{ProductID: "   ", Quantity: dec("1")})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestConsume_AuditoriaRegistrada(t *testing.T) {
	store := memory.NewStore()
	sembrarLote(t, store, "L1", "P3", 1, "5", "10.00")

	uc := inventory.NewConsumeUseCase(store)
	_, err := uc.Consume(context.Background(), dto.ConsumeRequest{ProductID: "P3", Quantity: dec("2")})
	require.NoError(t, err)

	historial, err := store.ConsumptionRepository().ListByProduct(context.Background(), "P3", 10, 0)
	require.NoError(t, err)
	require.Len(t, historial, 1)
	assert.Equal(t, entity.ConsumptionPurposeAdjustment, historial[0].Purpose,
		"sin propósito explícito se registra como ajuste")
	require.Len(t, historial[0].Entries, 1)
	assert.Equal(t, "L1", historial[0].Entries[0].LotID)
	assert.True(t, dec("20.00").Equal(historial[0].TotalCost))
}

// TestConsume_ConcurrenciaSinSobreventa lanza consumos concurrentes contra un
// stock que solo alcanza para la mitad: la suma de lo consumido con éxito
// nunca puede superar el stock inicial, y el resto debe fallar con
// ErrInsufficientStock.
func TestConsume_ConcurrenciaSinSobreventa(t *testing.T) {
	store := memory.NewStore()
	sembrarLote(t, store, "L1", "P9", 1, "10", "1.00")

	uc := inventory.NewConsumeUseCase(store)
	const intentos = 20 // cada uno pide 1 unidad; solo 10 pueden ganar

	var wg sync.WaitGroup
	var mu sync.Mutex
	exitos, insuficientes := 0, 0
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Consume(context.Background(), dto.ConsumeRequest{ProductID: "P9", Quantity: dec("1")})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				exitos++
			case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
				insuficientes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, exitos, "exactamente 10 consumos de 1 unidad caben en 10 de stock")
	assert.Equal(t, intentos-10, insuficientes)

	lots, err := store.LotRepository().ListByProduct(context.Background(), "P9")
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.True(t, lots[0].CurrentQuantity.IsZero())
}
