package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/memory"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Costeo-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la API HTTP completa sobre el ledger en memoria: entrega → consumo
// → consultas de costo, con los códigos de estado y el mapeo de errores que
// ven los clientes.
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp monta la app Fiber con todos los casos de uso cableados al
// store en memoria, igual que main pero sin PostgreSQL.
func buildTestApp() *fiber.App {
	store := memory.NewStore()
	lotRepo := store.LotRepository()
	consumptionRepo := store.ConsumptionRepository()

	costQuery := inventory.NewCostQueryUseCase(lotRepo, consumptionRepo)
	deps := apphttp.RouterDeps{
		ProcessDelivery: inventory.NewProcessDeliveryUseCase(store),
		Consume:         inventory.NewConsumeUseCase(store),
		CostQuery:       costQuery,
		ValuationPDF:    inventory.NewValuationPDFUseCase(costQuery, pdf.NewMarotoValuationGenerator()),
	}

	app := fiber.New()
	apphttp.Router(app, deps)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string, out any) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func entregaBody() map[string]any {
	return map[string]any{
		"order_id": "ORD-100",
		"lines": []map[string]any{
			{"product_id": "P1", "quantity": "10", "purchase_price": "2.00"},
			{"product_id": "P2", "quantity": "5", "purchase_price": "8.00"},
		},
		"shipping_cost": "12.00",
	}
}

func TestAPI_EntregaYCostoPromedio(t *testing.T) {
	app := buildTestApp()

	resp := postJSON(t, app, "/api/deliveries", entregaBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		OrderID string `json:"order_id"`
		Lots    []struct {
			ProductID          string `json:"product_id"`
			FreightCostPerUnit string `json:"freight_cost_per_unit"`
			UnitCost           string `json:"unit_cost"`
		} `json:"lots"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.Len(t, created.Lots, 2)
	assert.Equal(t, "0.4", created.Lots[0].FreightCostPerUnit)
	assert.Equal(t, "2.4", created.Lots[0].UnitCost)
	assert.Equal(t, "1.6", created.Lots[1].FreightCostPerUnit)
	assert.Equal(t, "9.6", created.Lots[1].UnitCost)

	var avg struct {
		AverageCost string `json:"average_cost"`
	}
	resp = getJSON(t, app, "/api/products/P1/average-cost", &avg)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "2.4", avg.AverageCost)
}

func TestAPI_EntregaDuplicada409(t *testing.T) {
	app := buildTestApp()

	resp := postJSON(t, app, "/api/deliveries", entregaBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/deliveries", entregaBody())
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var errResp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "ORDER_ALREADY_PROCESSED", errResp.Code)
}

func TestAPI_EntregaInvalida400(t *testing.T) {
	app := buildTestApp()

	body := entregaBody()
	body["lines"] = []map[string]any{}
	resp := postJSON(t, app, "/api/deliveries", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body = entregaBody()
	body["order_id"] = ""
	resp = postJSON(t, app, "/api/deliveries", body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode,
		"una orden irreferenciable se reporta como no encontrada")
}

func TestAPI_ConsumoFIFO(t *testing.T) {
	app := buildTestApp()
	postJSON(t, app, "/api/deliveries", entregaBody())

	resp := postJSON(t, app, "/api/inventory/consumptions", map[string]any{
		"product_id": "P1",
		"quantity":   "7",
		"purpose":    "SALE",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var consumed struct {
		TotalCost string `json:"total_cost"`
		Draws     []struct {
			Quantity string `json:"quantity"`
			UnitCost string `json:"unit_cost"`
		} `json:"draws"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&consumed))
	require.Len(t, consumed.Draws, 1)
	assert.Equal(t, "7", consumed.Draws[0].Quantity)
	assert.Equal(t, "2.4", consumed.Draws[0].UnitCost)
	assert.Equal(t, "16.8", consumed.TotalCost)

	// 7 de 10 consumidas: quedan 3 y el promedio no cambia (un solo lote).
	var info struct {
		TotalQuantity string `json:"total_quantity"`
		AverageCost   string `json:"average_cost"`
		LotCount      int    `json:"lot_count"`
	}
	resp = getJSON(t, app, "/api/products/P1/cost", &info)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "3", info.TotalQuantity)
	assert.Equal(t, "2.4", info.AverageCost)
	assert.Equal(t, 1, info.LotCount)
}

func TestAPI_ConsumoSinStock409(t *testing.T) {
	app := buildTestApp()
	postJSON(t, app, "/api/deliveries", entregaBody())

	resp := postJSON(t, app, "/api/inventory/consumptions", map[string]any{
		"product_id": "P1",
		"quantity":   "999",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var errResp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)
}

func TestAPI_ConsumoCantidadInvalida400(t *testing.T) {
	app := buildTestApp()

	resp := postJSON(t, app, "/api/inventory/consumptions", map[string]any{
		"product_id": "P1",
		"quantity":   "0",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ListadosDeLotesYConsumos(t *testing.T) {
	app := buildTestApp()
	postJSON(t, app, "/api/deliveries", entregaBody())
	postJSON(t, app, "/api/inventory/consumptions", map[string]any{
		"product_id": "P1", "quantity": "10",
	})

	// P1 quedó agotado: con ?active=true no aparece, sin filtro sí.
	var activos struct {
		Total int `json:"total"`
	}
	getJSON(t, app, "/api/products/P1/lots?active=true", &activos)
	assert.Zero(t, activos.Total)

	var todos struct {
		Total int `json:"total"`
		Lots  []struct {
			CurrentQuantity string `json:"current_quantity"`
		} `json:"lots"`
	}
	getJSON(t, app, "/api/products/P1/lots", &todos)
	require.Equal(t, 1, todos.Total)
	assert.Equal(t, "0", todos.Lots[0].CurrentQuantity)

	var consumos struct {
		Total        int `json:"total"`
		Consumptions []struct {
			Purpose string `json:"purpose"`
		} `json:"consumptions"`
	}
	resp := getJSON(t, app, "/api/products/P1/consumptions", &consumos)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, consumos.Total)
	assert.Equal(t, "ADJUSTMENT", consumos.Consumptions[0].Purpose)
}

func TestAPI_ValoracionPDF(t *testing.T) {
	app := buildTestApp()
	postJSON(t, app, "/api/deliveries", entregaBody())

	req := httptest.NewRequest(http.MethodGet, "/api/products/P1/valuation/pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "valoracion_P1_")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")), "el cuerpo debe ser un PDF")
}
