package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, product_id, supplier_order_id, original_quantity, current_quantity,
		purchase_price, freight_cost_per_unit, unit_cost, lot_number, notes,
		received_date, expiry_date, created_at, updated_at`

// CreateBatch persiste todos los lotes de una entrega. La atomicidad la da la
// transacción del caller: fuera de una tx cada insert es independiente.
func (r *LotRepo) CreateBatch(ctx context.Context, lots []*entity.InventoryLot) error {
	query := `
		INSERT INTO inventory_lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	for _, lot := range lots {
		_, err := r.q.Exec(ctx, query,
			lot.ID, lot.ProductID, nullable(lot.SupplierOrderID),
			lot.OriginalQuantity, lot.CurrentQuantity,
			lot.PurchasePrice, lot.FreightCostPerUnit, lot.UnitCost,
			nullable(lot.LotNumber), nullable(lot.Notes),
			lot.ReceivedDate, lot.ExpiryDate, lot.CreatedAt, lot.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("create lot %s: %w", lot.ID, err)
		}
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve (nil, nil) si no existe.
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + ` FROM inventory_lots WHERE id = $1`
	lot, err := scanLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return lot, nil
}

// ListByProduct lista todos los lotes del producto (incluye agotados) en orden FIFO.
func (r *LotRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryLot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM inventory_lots WHERE product_id = $1
		ORDER BY received_date, created_at, id`
	return r.list(ctx, query, productID)
}

// ListActiveByProduct lista los lotes con existencias en orden FIFO.
func (r *LotRepo) ListActiveByProduct(ctx context.Context, productID string) ([]*entity.InventoryLot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM inventory_lots WHERE product_id = $1 AND current_quantity > 0
		ORDER BY received_date, created_at, id`
	return r.list(ctx, query, productID)
}

// ListActiveForUpdate igual que ListActiveByProduct pero bloqueando las filas
// (SELECT FOR UPDATE). Serializa el consumo por producto; usar dentro de una tx.
func (r *LotRepo) ListActiveForUpdate(ctx context.Context, productID string) ([]*entity.InventoryLot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM inventory_lots WHERE product_id = $1 AND current_quantity > 0
		ORDER BY received_date, created_at, id
		FOR UPDATE`
	return r.list(ctx, query, productID)
}

// DecrementQuantity resta qty de las existencias del lote. El WHERE con
// current_quantity >= qty impide dejar la cantidad negativa aunque el plan
// estuviera desactualizado.
func (r *LotRepo) DecrementQuantity(ctx context.Context, lotID string, qty decimal.Decimal) error {
	query := `
		UPDATE inventory_lots
		SET current_quantity = current_quantity - $2, updated_at = now()
		WHERE id = $1 AND current_quantity >= $2`
	tag, err := r.q.Exec(ctx, query, lotID, qty)
	if err != nil {
		return fmt.Errorf("decrement lot %s: %w", lotID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// RegisterDelivery marca la orden como procesada (compare-and-create: la PK de
// lot_deliveries convierte el duplicado en ErrOrderAlreadyProcessed, incluso
// si dos transacciones compiten).
func (r *LotRepo) RegisterDelivery(ctx context.Context, orderID string, lotCount int) error {
	query := `
		INSERT INTO lot_deliveries (order_id, lot_count, created_at)
		VALUES ($1, $2, now())`
	_, err := r.q.Exec(ctx, query, orderID, lotCount)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderAlreadyProcessed
		}
		return fmt.Errorf("register delivery: %w", err)
	}
	return nil
}

// DeliveryProcessed indica si la orden ya generó lotes.
func (r *LotRepo) DeliveryProcessed(ctx context.Context, orderID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM lot_deliveries WHERE order_id = $1)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, orderID).Scan(&exists); err != nil {
		return false, fmt.Errorf("delivery processed: %w", err)
	}
	return exists, nil
}

func (r *LotRepo) list(ctx context.Context, query, productID string) ([]*entity.InventoryLot, error) {
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryLot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, lot)
	}
	return list, rows.Err()
}

func scanLot(row pgx.Row) (*entity.InventoryLot, error) {
	var l entity.InventoryLot
	var supplierOrderID, lotNumber, notes *string
	var expiry *time.Time
	err := row.Scan(
		&l.ID, &l.ProductID, &supplierOrderID, &l.OriginalQuantity, &l.CurrentQuantity,
		&l.PurchasePrice, &l.FreightCostPerUnit, &l.UnitCost, &lotNumber, &notes,
		&l.ReceivedDate, &expiry, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if supplierOrderID != nil {
		l.SupplierOrderID = *supplierOrderID
	}
	if lotNumber != nil {
		l.LotNumber = *lotNumber
	}
	if notes != nil {
		l.Notes = *notes
	}
	l.ExpiryDate = expiry
	return &l, nil
}

// nullable convierte cadena vacía en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
