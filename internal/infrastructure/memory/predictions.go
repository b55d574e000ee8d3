package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

var _ repository.PredictionRepository = (*PredictionRepo)(nil)

// PredictionRepo implementación en memoria de PredictionRepository.
type PredictionRepo struct {
	store *Store
}

// UpsertBatch aplica last-write-wins por clave (producto, día), igual que el
// ON CONFLICT ... DO UPDATE de PostgreSQL.
func (r *PredictionRepo) UpsertBatch(ctx context.Context, predictions []entity.Prediction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range predictions {
		p.Date = dayOf(p.Date)
		r.store.predictions[p.ProductID+"|"+dayKey(p.Date)] = p
	}
	return nil
}

// Count devuelve el número de filas persistidas; para aserciones de idempotencia en tests.
func (r *PredictionRepo) Count() int {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.predictions)
}

// Get devuelve la predicción de un producto y día, si existe.
func (r *PredictionRepo) Get(productID string, date time.Time) (entity.Prediction, bool) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.predictions[productID+"|"+dayKey(date)]
	return p, ok
}

func (r *PredictionRepo) SumForProduct(ctx context.Context, productID string, start, end time.Time) (float64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	startDay, endDay := dayOf(start), dayOf(end)
	var sum float64
	for _, p := range r.store.predictions {
		if p.ProductID != productID {
			continue
		}
		if p.Date.Before(startDay) || !p.Date.Before(endDay) { // [start, end)
			continue
		}
		sum += p.Value
	}
	return sum, nil
}

func (r *PredictionRepo) CategoryDailyTotals(ctx context.Context, from time.Time) ([]repository.CategoryDailyDemand, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	fromDay := dayOf(from)
	totals := make(map[string]*repository.CategoryDailyDemand)
	for _, p := range r.store.predictions {
		if p.Date.Before(fromDay) {
			continue
		}
		prod, ok := r.store.products[p.ProductID]
		if !ok {
			continue
		}
		cat, ok := r.store.categories[prod.CategoryID]
		if !ok {
			continue
		}
		key := cat.ID + "|" + dayKey(p.Date)
		t, exists := totals[key]
		if !exists {
			t = &repository.CategoryDailyDemand{CategoryID: cat.ID, CategoryName: cat.Name, Date: p.Date}
			totals[key] = t
		}
		t.Value += p.Value
	}

	list := make([]repository.CategoryDailyDemand, 0, len(totals))
	for _, t := range totals {
		list = append(list, *t)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].CategoryName < list[j].CategoryName
	})
	return list, nil
}

func (r *PredictionRepo) ProductDailyForecast(ctx context.Context, categoryID string, from time.Time) ([]repository.ProductDailyDemand, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	fromDay := dayOf(from)
	var list []repository.ProductDailyDemand
	for _, p := range r.store.predictions {
		if p.Date.Before(fromDay) {
			continue
		}
		prod, ok := r.store.products[p.ProductID]
		if !ok || prod.CategoryID != categoryID {
			continue
		}
		list = append(list, repository.ProductDailyDemand{
			ProductID:   prod.ID,
			ProductName: prod.Name,
			Date:        p.Date,
			Value:       p.Value,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].ProductName < list[j].ProductName
	})
	return list, nil
}

func (r *PredictionRepo) CategoryTotalsInRange(ctx context.Context, from, to time.Time) ([]repository.CategoryDemandTotal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	fromDay, toDay := dayOf(from), dayOf(to)
	totals := make(map[string]*repository.CategoryDemandTotal)
	for _, p := range r.store.predictions {
		if !inRange(p.Date, fromDay, toDay) {
			continue
		}
		prod, ok := r.store.products[p.ProductID]
		if !ok {
			continue
		}
		cat, ok := r.store.categories[prod.CategoryID]
		if !ok {
			continue
		}
		t, exists := totals[cat.ID]
		if !exists {
			t = &repository.CategoryDemandTotal{CategoryID: cat.ID, CategoryName: cat.Name}
			totals[cat.ID] = t
		}
		t.Value += p.Value
	}

	list := make([]repository.CategoryDemandTotal, 0, len(totals))
	for _, t := range totals {
		list = append(list, *t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Value != list[j].Value {
			return list[i].Value > list[j].Value
		}
		return list[i].CategoryName < list[j].CategoryName
	})
	return list, nil
}
