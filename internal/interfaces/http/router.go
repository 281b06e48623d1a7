package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProcessDelivery *inventory.ProcessDeliveryUseCase
	Consume         *inventory.ConsumeUseCase
	CostQuery       *inventory.CostQueryUseCase
	ValuationPDF    *inventory.ValuationPDFUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	inventoryHandler := NewInventoryHandler(deps.ProcessDelivery, deps.Consume)
	costHandler := NewCostHandler(deps.CostQuery, deps.ValuationPDF)

	// Entregas de proveedor: evento "entrega completada" -> lotes
	api.Post("/deliveries", inventoryHandler.ProcessDelivery)

	// Consumo FIFO
	invGroup := api.Group("/inventory")
	invGroup.Post("/consumptions", inventoryHandler.Consume)

	// Camino de lectura: costos, lotes, auditoría, valoración
	products := api.Group("/products")
	products.Get("/:id/cost", costHandler.CostInfo)
	products.Get("/:id/average-cost", costHandler.AverageCost)
	products.Get("/:id/lots", costHandler.ListLots)
	products.Get("/:id/consumptions", costHandler.ListConsumptions)
	products.Get("/:id/valuation/pdf", costHandler.ValuationPDF)
}
