package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación en memoria de LedgerRepository.
type LedgerRepo struct {
	store *Store
}

func (r *LedgerRepo) Append(ctx context.Context, tx *entity.InventoryTransaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *tx
	r.store.ledger = append(r.store.ledger, &cp)
	return nil
}

func (r *LedgerRepo) LatestBefore(ctx context.Context, productID string, at time.Time) (*entity.InventoryTransaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var latest *entity.InventoryTransaction
	for _, tx := range r.store.ledger {
		if tx.ProductID != productID || tx.Date.After(at) {
			continue
		}
		// En empate de fecha gana la insertada después, igual que el
		// ORDER BY date DESC, created_at DESC de la consulta SQL
		if latest == nil || !tx.Date.Before(latest.Date) {
			latest = tx
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *LedgerRepo) SaleQuantitiesByDay(ctx context.Context, productID string, start, end time.Time) ([]repository.DailyQuantity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	startDay, endDay := dayOf(start), dayOf(end)
	byDay := make(map[string]*repository.DailyQuantity)
	for _, tx := range r.store.ledger {
		if tx.ProductID != productID || tx.Origin.Kind != entity.OriginSale || tx.Quantity >= 0 {
			continue
		}
		day := dayOf(tx.Date)
		if !inRange(day, startDay, endDay) {
			continue
		}
		key := dayKey(day)
		q, ok := byDay[key]
		if !ok {
			q = &repository.DailyQuantity{Date: day}
			byDay[key] = q
		}
		q.Quantity += -tx.Quantity
	}

	list := make([]repository.DailyQuantity, 0, len(byDay))
	for _, q := range byDay {
		list = append(list, *q)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

func (r *LedgerRepo) BalancesByDay(ctx context.Context, productID string, start, end time.Time) ([]repository.DailyBalance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	startDay, endDay := dayOf(start), dayOf(end)
	latestByDay := make(map[string]*entity.InventoryTransaction)
	for _, tx := range r.store.ledger {
		if tx.ProductID != productID {
			continue
		}
		day := dayOf(tx.Date)
		if !inRange(day, startDay, endDay) {
			continue
		}
		key := dayKey(day)
		current, ok := latestByDay[key]
		if !ok || !tx.Date.Before(current.Date) {
			latestByDay[key] = tx
		}
	}

	list := make([]repository.DailyBalance, 0, len(latestByDay))
	for key, tx := range latestByDay {
		day, _ := time.ParseInLocation("2006-01-02", key, start.Location())
		list = append(list, repository.DailyBalance{Date: day, Balance: tx.StockBalance})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}
