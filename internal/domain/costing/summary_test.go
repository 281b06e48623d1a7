package costing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/domain/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Summarize: vista de costo derivada
// ──────────────────────────────────────────────────────────────────────────────

// Promedio ponderado por cantidad: (3×2.40 + 5×9.60) / 8 = 6.90.
func TestSummarize_PromedioPonderado(t *testing.T) {
	lots := []*entity.InventoryLot{
		lote("L1", 1, "3", "2.40"),
		lote("L2", 2, "5", "9.60"),
	}

	info := costing.Summarize("P1", lots)

	assert.Equal(t, "P1", info.ProductID)
	assert.Equal(t, 2, info.LotCount)
	assert.True(t, info.TotalQuantity.Equal(dec("8")))
	assert.True(t, info.AverageCost.Equal(dec("6.90")), "obtenido %s", info.AverageCost)
	require.NotNil(t, info.OldestLotDate)
	require.NotNil(t, info.NewestLotDate)
	assert.True(t, info.OldestLotDate.Before(*info.NewestLotDate))
}

// Los lotes agotados no pesan en el promedio: si solo queda el lote del día 2
// a 12.00, el promedio es 12.00.
func TestSummarize_IgnoraLotesAgotados(t *testing.T) {
	agotado := lote("L1", 1, "0", "10.00")
	agotado.OriginalQuantity = dec("5")
	lots := []*entity.InventoryLot{
		agotado,
		lote("L2", 2, "3", "12.00"),
	}

	info := costing.Summarize("P3", lots)

	assert.Equal(t, 1, info.LotCount)
	assert.True(t, info.TotalQuantity.Equal(dec("3")))
	assert.True(t, info.AverageCost.Equal(dec("12.00")))
}

// Sin lotes activos: promedio 0, cantidades 0, fechas nil. Estado válido, no error.
func TestSummarize_SinStock(t *testing.T) {
	info := costing.Summarize("P9", nil)

	assert.True(t, info.AverageCost.IsZero())
	assert.True(t, info.TotalQuantity.IsZero())
	assert.Equal(t, 0, info.LotCount)
	assert.Nil(t, info.OldestLotDate)
	assert.Nil(t, info.NewestLotDate)

	agotado := lote("L1", 1, "0", "99.00")
	info = costing.Summarize("P9", []*entity.InventoryLot{agotado})
	assert.True(t, info.AverageCost.IsZero())
	assert.Nil(t, info.OldestLotDate)
}
