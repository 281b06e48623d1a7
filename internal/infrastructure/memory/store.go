// Package memory implementa el ledger de lotes en memoria. Se usa en los tests
// de los casos de uso (instancias aisladas, sin BD) y como backend de
// desarrollo cuando no hay PostgreSQL configurado.
//
// La serialización es de grano grueso: un solo mutex cubre cada transacción
// completa, lo que preserva las mismas garantías observables que el backend
// PostgreSQL (consumo todo-o-nada, sin lost updates). El rollback se hace por
// snapshot: Run copia el estado antes de ejecutar y lo restaura si fn falla.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner               = (*Store)(nil)
	_ repository.LotRepository         = (*lotView)(nil)
	_ repository.ConsumptionRepository = (*consumptionView)(nil)
)

// Store ledger de lotes en memoria.
type Store struct {
	mu           sync.Mutex
	lots         map[string]*entity.InventoryLot
	lotSeq       map[string]int // orden de inserción, desempate FIFO determinista
	seq          int
	deliveries   map[string]int // orderID -> número de lotes creados
	consumptions []*entity.LotConsumption
}

// NewStore construye un ledger vacío.
func NewStore() *Store {
	return &Store{
		lots:       make(map[string]*entity.InventoryLot),
		lotSeq:     make(map[string]int),
		deliveries: make(map[string]int),
	}
}

// LotRepository devuelve la vista de lotes para uso fuera de transacción.
func (s *Store) LotRepository() repository.LotRepository {
	return &lotView{s: s, locking: true}
}

// ConsumptionRepository devuelve la vista de consumos para uso fuera de transacción.
func (s *Store) ConsumptionRepository() repository.ConsumptionRepository {
	return &consumptionView{s: s, locking: true}
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// Run ejecuta fn bajo el mutex del store con semántica todo-o-nada: si fn
// devuelve error se restaura el snapshot previo y ningún cambio queda visible.
func (s *Store) Run(_ context.Context, fn func(
	lotRepo repository.LotRepository,
	consumptionRepo repository.ConsumptionRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	// Vistas sin lock: el mutex ya lo sostiene Run durante toda la transacción.
	if err := fn(&lotView{s: s}, &consumptionView{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	lots         map[string]*entity.InventoryLot
	lotSeq       map[string]int
	seq          int
	deliveries   map[string]int
	consumptions []*entity.LotConsumption
}

func (s *Store) snapshot() storeSnapshot {
	snap := storeSnapshot{
		lots:         make(map[string]*entity.InventoryLot, len(s.lots)),
		lotSeq:       make(map[string]int, len(s.lotSeq)),
		seq:          s.seq,
		deliveries:   make(map[string]int, len(s.deliveries)),
		consumptions: append([]*entity.LotConsumption(nil), s.consumptions...),
	}
	for id, lot := range s.lots {
		copied := *lot
		snap.lots[id] = &copied
	}
	for id, n := range s.lotSeq {
		snap.lotSeq[id] = n
	}
	for id, n := range s.deliveries {
		snap.deliveries[id] = n
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.lots = snap.lots
	s.lotSeq = snap.lotSeq
	s.seq = snap.seq
	s.deliveries = snap.deliveries
	s.consumptions = snap.consumptions
}

// ── LotRepository ─────────────────────────────────────────────────────────────

// lotView implementa repository.LotRepository sobre el store. Con locking
// toma el mutex por operación; sin locking asume que Run ya lo sostiene.
type lotView struct {
	s       *Store
	locking bool
}

func (v *lotView) acquire() func() {
	if !v.locking {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}

func (v *lotView) CreateBatch(_ context.Context, lots []*entity.InventoryLot) error {
	defer v.acquire()()
	s := v.s
	for _, lot := range lots {
		if _, exists := s.lots[lot.ID]; exists {
			return domain.ErrOrderAlreadyProcessed
		}
	}
	for _, lot := range lots {
		copied := *lot
		s.seq++
		s.lots[lot.ID] = &copied
		s.lotSeq[lot.ID] = s.seq
	}
	return nil
}

func (v *lotView) GetByID(_ context.Context, id string) (*entity.InventoryLot, error) {
	defer v.acquire()()
	lot, ok := v.s.lots[id]
	if !ok {
		return nil, nil
	}
	copied := *lot
	return &copied, nil
}

func (v *lotView) ListByProduct(_ context.Context, productID string) ([]*entity.InventoryLot, error) {
	defer v.acquire()()
	return v.s.listLots(productID, false), nil
}

func (v *lotView) ListActiveByProduct(_ context.Context, productID string) ([]*entity.InventoryLot, error) {
	defer v.acquire()()
	return v.s.listLots(productID, true), nil
}

func (v *lotView) ListActiveForUpdate(_ context.Context, productID string) ([]*entity.InventoryLot, error) {
	// No hay bloqueo por fila: la serialización la da el mutex del store.
	defer v.acquire()()
	return v.s.listLots(productID, true), nil
}

func (v *lotView) DecrementQuantity(_ context.Context, lotID string, qty decimal.Decimal) error {
	defer v.acquire()()
	lot, ok := v.s.lots[lotID]
	if !ok {
		return domain.ErrNotFound
	}
	if lot.CurrentQuantity.LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	lot.CurrentQuantity = lot.CurrentQuantity.Sub(qty)
	lot.UpdatedAt = time.Now()
	return nil
}

func (v *lotView) RegisterDelivery(_ context.Context, orderID string, lotCount int) error {
	defer v.acquire()()
	if _, exists := v.s.deliveries[orderID]; exists {
		return domain.ErrOrderAlreadyProcessed
	}
	v.s.deliveries[orderID] = lotCount
	return nil
}

func (v *lotView) DeliveryProcessed(_ context.Context, orderID string) (bool, error) {
	defer v.acquire()()
	_, ok := v.s.deliveries[orderID]
	return ok, nil
}

// listLots devuelve copias de los lotes del producto en orden FIFO:
// received_date, luego created_at, luego orden de inserción.
func (s *Store) listLots(productID string, activeOnly bool) []*entity.InventoryLot {
	var list []*entity.InventoryLot
	for _, lot := range s.lots {
		if lot.ProductID != productID {
			continue
		}
		if activeOnly && !lot.CurrentQuantity.IsPositive() {
			continue
		}
		copied := *lot
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.ReceivedDate.Equal(b.ReceivedDate) {
			return a.ReceivedDate.Before(b.ReceivedDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return s.lotSeq[a.ID] < s.lotSeq[b.ID]
	})
	return list
}

// ── ConsumptionRepository ─────────────────────────────────────────────────────

// consumptionView implementa repository.ConsumptionRepository sobre el store.
type consumptionView struct {
	s       *Store
	locking bool
}

func (v *consumptionView) acquire() func() {
	if !v.locking {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}

func (v *consumptionView) Create(_ context.Context, consumption *entity.LotConsumption) error {
	defer v.acquire()()
	copied := *consumption
	copied.Entries = append([]entity.LotConsumptionEntry(nil), consumption.Entries...)
	v.s.consumptions = append(v.s.consumptions, &copied)
	return nil
}

func (v *consumptionView) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.LotConsumption, error) {
	defer v.acquire()()
	var list []*entity.LotConsumption
	// Del más reciente al más antiguo.
	for i := len(v.s.consumptions) - 1; i >= 0; i-- {
		if v.s.consumptions[i].ProductID == productID {
			list = append(list, v.s.consumptions[i])
		}
	}
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}
