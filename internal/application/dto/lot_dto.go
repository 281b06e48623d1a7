package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryLineRequest línea de una entrega completada de proveedor.
type DeliveryLineRequest struct {
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	LotNumber     string          `json:"lot_number,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// ProcessDeliveryRequest body para POST /api/deliveries.
// DeliveredAt opcional: si falta, se usa la hora del servidor como fecha de recepción.
type ProcessDeliveryRequest struct {
	OrderID      string                `json:"order_id"`
	Lines        []DeliveryLineRequest `json:"lines"`
	ShippingCost decimal.Decimal       `json:"shipping_cost"`
	DeliveredAt  *time.Time            `json:"delivered_at,omitempty"`
}

// CreatedLotDTO lote creado por el procesamiento de una entrega.
type CreatedLotDTO struct {
	LotID              string          `json:"lot_id"`
	ProductID          string          `json:"product_id"`
	Quantity           decimal.Decimal `json:"quantity"`
	PurchasePrice      decimal.Decimal `json:"purchase_price"`
	FreightCostPerUnit decimal.Decimal `json:"freight_cost_per_unit"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
}

// ProcessDeliveryResponse resumen de la entrega procesada.
type ProcessDeliveryResponse struct {
	OrderID      string          `json:"order_id"`
	ReceivedDate time.Time       `json:"received_date"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Lots         []CreatedLotDTO `json:"lots"`
}

// ConsumeRequest body para POST /api/inventory/consumptions.
type ConsumeRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Purpose   string          `json:"purpose,omitempty"`
}

// LotDrawDTO una toma sobre un lote concreto dentro de un consumo.
type LotDrawDTO struct {
	LotID    string          `json:"lot_id"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// ConsumeResponse resumen del consumo FIFO aplicado.
type ConsumeResponse struct {
	ConsumptionID string          `json:"consumption_id"`
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Purpose       string          `json:"purpose"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Draws         []LotDrawDTO    `json:"draws"`
	ConsumedAt    time.Time       `json:"consumed_at"`
}

// InventoryLotDTO representación de un lote en listados.
type InventoryLotDTO struct {
	ID                 string          `json:"id"`
	ProductID          string          `json:"product_id"`
	SupplierOrderID    string          `json:"supplier_order_id,omitempty"`
	OriginalQuantity   decimal.Decimal `json:"original_quantity"`
	CurrentQuantity    decimal.Decimal `json:"current_quantity"`
	PurchasePrice      decimal.Decimal `json:"purchase_price"`
	FreightCostPerUnit decimal.Decimal `json:"freight_cost_per_unit"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	LotNumber          string          `json:"lot_number,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	ReceivedDate       time.Time       `json:"received_date"`
	ExpiryDate         *time.Time      `json:"expiry_date,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ProductCostInfoDTO vista de costo agregada de un producto.
type ProductCostInfoDTO struct {
	ProductID     string          `json:"product_id"`
	AverageCost   decimal.Decimal `json:"average_cost"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	LotCount      int             `json:"lot_count"`
	OldestLotDate *time.Time      `json:"oldest_lot_date,omitempty"`
	NewestLotDate *time.Time      `json:"newest_lot_date,omitempty"`
}

// ConsumptionDTO registro de auditoría de un consumo.
type ConsumptionDTO struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Purpose    string          `json:"purpose"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Draws      []LotDrawDTO    `json:"draws"`
	ConsumedAt time.Time       `json:"consumed_at"`
}
