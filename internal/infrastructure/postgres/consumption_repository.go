package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo implementación de ConsumptionRepository sobre PostgreSQL
// (usable con pool o tx).
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

// Create persiste el consumo y sus entradas por lote. Llamar dentro de la
// misma transacción que aplica los decrementos.
func (r *ConsumptionRepo) Create(ctx context.Context, consumption *entity.LotConsumption) error {
	query := `
		INSERT INTO lot_consumptions (id, product_id, quantity, purpose, total_cost, consumed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		consumption.ID, consumption.ProductID, consumption.Quantity,
		consumption.Purpose, consumption.TotalCost, consumption.ConsumedAt, consumption.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create consumption: %w", err)
	}

	entryQuery := `
		INSERT INTO lot_consumption_entries (id, consumption_id, lot_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5)`
	for _, e := range consumption.Entries {
		_, err := r.q.Exec(ctx, entryQuery, e.ID, e.ConsumptionID, e.LotID, e.Quantity, e.UnitCost)
		if err != nil {
			return fmt.Errorf("create consumption entry: %w", err)
		}
	}
	return nil
}

// ListByProduct lista los consumos del producto con sus entradas, del más
// reciente al más antiguo.
func (r *ConsumptionRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.LotConsumption, error) {
	query := `
		SELECT id, product_id, quantity, purpose, total_cost, consumed_at, created_at
		FROM lot_consumptions WHERE product_id = $1
		ORDER BY consumed_at DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list consumptions: %w", err)
	}
	defer rows.Close()

	var list []*entity.LotConsumption
	for rows.Next() {
		var c entity.LotConsumption
		if err := rows.Scan(&c.ID, &c.ProductID, &c.Quantity, &c.Purpose,
			&c.TotalCost, &c.ConsumedAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range list {
		entries, err := r.listEntries(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Entries = entries
	}
	return list, nil
}

func (r *ConsumptionRepo) listEntries(ctx context.Context, consumptionID string) ([]entity.LotConsumptionEntry, error) {
	query := `
		SELECT id, consumption_id, lot_id, quantity, unit_cost
		FROM lot_consumption_entries WHERE consumption_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, consumptionID)
	if err != nil {
		return nil, fmt.Errorf("list consumption entries: %w", err)
	}
	defer rows.Close()

	var entries []entity.LotConsumptionEntry
	for rows.Next() {
		var e entity.LotConsumptionEntry
		if err := rows.Scan(&e.ID, &e.ConsumptionID, &e.LotID, &e.Quantity, &e.UnitCost); err != nil {
			return nil, fmt.Errorf("scan consumption entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
