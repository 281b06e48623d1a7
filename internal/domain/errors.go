package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Validación: se rechazan de forma síncrona antes de tocar el ledger.
// Conflicto de estado: resultados esperados, recuperables por el caller.
// Fallas de almacenamiento se propagan envueltas (%w), nunca como estos centinelas.
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidQuantity       = errors.New("cantidad inválida")
	ErrInvalidDelivery       = errors.New("entrega inválida")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrOrderAlreadyProcessed = errors.New("orden ya procesada")
	ErrOrderNotFound         = errors.New("orden no encontrada")
)
