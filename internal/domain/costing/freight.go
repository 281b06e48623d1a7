package costing

import "github.com/shopspring/decimal"

// DeliveryLine línea de una entrega de proveedor (entrada transitoria: el core
// no la persiste, solo la convierte en lotes).
type DeliveryLine struct {
	ProductID     string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	LotNumber     string
	Notes         string
}

// Value devuelve el valor de compra de la línea (cantidad × precio).
func (l DeliveryLine) Value() decimal.Decimal {
	return l.Quantity.Mul(l.PurchasePrice)
}

// AllocateFreight reparte el costo de envío de una entrega entre sus líneas en
// proporción al valor de compra de cada una, y devuelve el flete por unidad de
// cada línea en el mismo orden de entrada.
//
// Fórmula, conservada literalmente porque los resultados deben cuadrar al
// centavo con el historial contable:
//
//	freightPerUnit_i = ((qty_i × price_i) / totalValue) × shipping / qty_i
//
// shipping == 0 o totalValue == 0 ⇒ flete cero para todas las líneas: es el
// caso degenerado correcto de "no hay flete que repartir", no un error.
func AllocateFreight(lines []DeliveryLine, shippingCost decimal.Decimal) []decimal.Decimal {
	perUnit := make([]decimal.Decimal, len(lines))

	totalValue := decimal.Zero
	for _, line := range lines {
		totalValue = totalValue.Add(line.Value())
	}
	if shippingCost.IsZero() || totalValue.IsZero() {
		for i := range perUnit {
			perUnit[i] = decimal.Zero
		}
		return perUnit
	}

	for i, line := range lines {
		if line.Quantity.IsZero() {
			perUnit[i] = decimal.Zero
			continue
		}
		share := line.Value().Div(totalValue).Mul(shippingCost)
		perUnit[i] = share.Div(line.Quantity)
	}
	return perUnit
}
