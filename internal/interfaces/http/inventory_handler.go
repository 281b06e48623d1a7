package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de entregas y consumos FIFO.
type InventoryHandler struct {
	processDelivery *inventory.ProcessDeliveryUseCase
	consume         *inventory.ConsumeUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(processDelivery *inventory.ProcessDeliveryUseCase, consume *inventory.ConsumeUseCase) *InventoryHandler {
	return &InventoryHandler{processDelivery: processDelivery, consume: consume}
}

// ProcessDelivery godoc
// @Summary      Procesar una entrega completada de proveedor
// @Description  Crea un lote por línea de la entrega, repartiendo el costo de
//               envío en proporción al valor de compra de cada línea. Atómico
//               e idempotente por order_id.
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessDeliveryRequest  true  "order_id, lines (product_id, quantity, purchase_price), shipping_cost, delivered_at opcional"
// @Success      201   {object}  dto.ProcessDeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *InventoryHandler) ProcessDelivery(c *fiber.Ctx) error {
	var in dto.ProcessDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	resp, err := h.processDelivery.ProcessDelivery(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDelivery):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DELIVERY", Message: "entrega inválida: revise líneas, cantidades y costo de envío"})
		case errors.Is(err, domain.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ORDER_NOT_FOUND", Message: "orden no encontrada"})
		case errors.Is(err, domain.ErrOrderAlreadyProcessed):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ORDER_ALREADY_PROCESSED", Message: "la orden ya generó lotes"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Consume godoc
// @Summary      Consumir unidades de un producto en orden FIFO
// @Description  Agota lotes del más antiguo al más nuevo. Todo o nada: si el
//               stock disponible no alcanza, ningún lote se modifica.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeRequest  true  "product_id, quantity, purpose (SALE, ADJUSTMENT, WASTE o libre)"
// @Success      201   {object}  dto.ConsumeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/consumptions [post]
func (h *InventoryHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	resp, err := h.consume.Consume(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser mayor que cero"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
