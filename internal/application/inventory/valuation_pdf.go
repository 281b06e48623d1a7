package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Costeo-api/internal/domain/costing"
)

// ValuationPDFUseCase genera el reporte PDF de valoración de inventario de un
// producto: la vista de costo agregada más el detalle de lotes activos.
type ValuationPDFUseCase struct {
	costQuery *CostQueryUseCase
	generator ValuationPDFGenerator
}

// NewValuationPDFUseCase construye el caso de uso.
func NewValuationPDFUseCase(costQuery *CostQueryUseCase, generator ValuationPDFGenerator) *ValuationPDFUseCase {
	return &ValuationPDFUseCase{costQuery: costQuery, generator: generator}
}

// DownloadValuationPDF arma la vista de costo y los lotes activos del producto
// y genera el PDF. Producto sin stock produce un reporte vacío válido.
func (uc *ValuationPDFUseCase) DownloadValuationPDF(ctx context.Context, productID string) (pdfBytes []byte, filename string, err error) {
	lots, err := uc.costQuery.ListLots(ctx, productID, true)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: listar lotes activos: %w", err)
	}
	info := costing.Summarize(productID, lots)

	pdfBytes, err = uc.generator.GenerateValuationPDF(ctx, info, lots)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar reporte: %w", err)
	}

	filename = fmt.Sprintf("valoracion_%s_%s.pdf", productID, time.Now().Format("20060102"))
	return pdfBytes, filename, nil
}
