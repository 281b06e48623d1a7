package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// CostHandler maneja el camino de lectura: vistas de costo, listados de lotes,
// historial de consumos y reporte de valoración.
type CostHandler struct {
	costQuery    *inventory.CostQueryUseCase
	valuationPDF *inventory.ValuationPDFUseCase
}

// NewCostHandler construye el handler.
func NewCostHandler(costQuery *inventory.CostQueryUseCase, valuationPDF *inventory.ValuationPDFUseCase) *CostHandler {
	return &CostHandler{costQuery: costQuery, valuationPDF: valuationPDF}
}

// AverageCost godoc
// @Summary      Costo promedio ponderado de un producto
// @Description  Media ponderada por cantidad sobre los lotes activos.
//               Devuelve 0 sin stock (estado válido, no error).
// @Tags         costs
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  map[string]string
// @Router       /api/products/{id}/average-cost [get]
func (h *CostHandler) AverageCost(c *fiber.Ctx) error {
	productID := c.Params("id")
	avg, err := h.costQuery.AverageCost(c.Context(), productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"product_id": productID, "average_cost": avg})
}

// CostInfo godoc
// @Summary      Vista de costo agregada de un producto
// @Tags         costs
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductCostInfoDTO
// @Router       /api/products/{id}/cost [get]
func (h *CostHandler) CostInfo(c *fiber.Ctx) error {
	productID := c.Params("id")
	info, err := h.costQuery.CostInfo(c.Context(), productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ProductCostInfoDTO{
		ProductID:     info.ProductID,
		AverageCost:   info.AverageCost,
		TotalQuantity: info.TotalQuantity,
		LotCount:      info.LotCount,
		OldestLotDate: info.OldestLotDate,
		NewestLotDate: info.NewestLotDate,
	})
}

// ListLots godoc
// @Summary      Lotes de un producto en orden FIFO
// @Tags         lots
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        active  query  bool    false  "Solo lotes con existencias"
// @Success      200  {array}  dto.InventoryLotDTO
// @Router       /api/products/{id}/lots [get]
func (h *CostHandler) ListLots(c *fiber.Ctx) error {
	productID := c.Params("id")
	activeOnly := c.QueryBool("active", false)

	lots, err := h.costQuery.ListLots(c.Context(), productID, activeOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := make([]dto.InventoryLotDTO, 0, len(lots))
	for _, lot := range lots {
		out = append(out, toLotDTO(lot))
	}
	return c.JSON(fiber.Map{"total": len(out), "lots": out})
}

// ListConsumptions godoc
// @Summary      Historial de consumos FIFO de un producto (auditoría)
// @Tags         inventory
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Máximo de registros (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.ConsumptionDTO
// @Router       /api/products/{id}/consumptions [get]
func (h *CostHandler) ListConsumptions(c *fiber.Ctx) error {
	productID := c.Params("id")
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}

	consumptions, err := h.costQuery.ListConsumptions(c.Context(), productID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := make([]dto.ConsumptionDTO, 0, len(consumptions))
	for _, cons := range consumptions {
		draws := make([]dto.LotDrawDTO, 0, len(cons.Entries))
		for _, e := range cons.Entries {
			draws = append(draws, dto.LotDrawDTO{LotID: e.LotID, Quantity: e.Quantity, UnitCost: e.UnitCost})
		}
		out = append(out, dto.ConsumptionDTO{
			ID:         cons.ID,
			ProductID:  cons.ProductID,
			Quantity:   cons.Quantity,
			Purpose:    cons.Purpose,
			TotalCost:  cons.TotalCost,
			Draws:      draws,
			ConsumedAt: cons.ConsumedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "consumptions": out})
}

// ValuationPDF godoc
// @Summary      Reporte PDF de valoración de inventario de un producto
// @Tags         costs
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {file}  binary
// @Router       /api/products/{id}/valuation/pdf [get]
func (h *CostHandler) ValuationPDF(c *fiber.Ctx) error {
	productID := c.Params("id")

	pdfBytes, filename, err := h.valuationPDF.DownloadValuationPDF(c.Context(), productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func toLotDTO(lot *entity.InventoryLot) dto.InventoryLotDTO {
	return dto.InventoryLotDTO{
		ID:                 lot.ID,
		ProductID:          lot.ProductID,
		SupplierOrderID:    lot.SupplierOrderID,
		OriginalQuantity:   lot.OriginalQuantity,
		CurrentQuantity:    lot.CurrentQuantity,
		PurchasePrice:      lot.PurchasePrice,
		FreightCostPerUnit: lot.FreightCostPerUnit,
		UnitCost:           lot.UnitCost,
		LotNumber:          lot.LotNumber,
		Notes:              lot.Notes,
		ReceivedDate:       lot.ReceivedDate,
		ExpiryDate:         lot.ExpiryDate,
		CreatedAt:          lot.CreatedAt,
		UpdatedAt:          lot.UpdatedAt,
	}
}
