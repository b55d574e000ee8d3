package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository  = (*SaleRepo)(nil)
	_ repository.OrderRepository = (*OrderRepo)(nil)
)

// SaleRepo implementación en memoria de SaleRepository.
type SaleRepo struct {
	store *Store
}

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	r.store.sales = append(r.store.sales, &cp)
	return nil
}

func (r *SaleRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var list []*entity.Sale
	for _, s := range r.store.sales {
		if inRange(s.Date, start, end) {
			cp := *s
			cp.Items = append([]entity.SaleItem(nil), s.Items...)
			list = append(list, &cp)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

func (r *SaleRepo) TotalsByProduct(ctx context.Context, start, end time.Time) ([]repository.ProductSalesTotal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	totals := make(map[string]*repository.ProductSalesTotal)
	for _, s := range r.store.sales {
		if !inRange(s.Date, start, end) {
			continue
		}
		for _, it := range s.Items {
			t, ok := totals[it.ProductID]
			if !ok {
				name := ""
				if p, exists := r.store.products[it.ProductID]; exists {
					name = p.Name
				}
				t = &repository.ProductSalesTotal{ProductID: it.ProductID, Name: name}
				totals[it.ProductID] = t
			}
			t.Quantity += it.Quantity
			t.Revenue += it.TotalSale
		}
	}

	list := make([]repository.ProductSalesTotal, 0, len(totals))
	for _, t := range totals {
		list = append(list, *t)
	}
	// Orden estable por nombre, como el ORDER BY de la consulta SQL
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *SaleRepo) TotalsForProduct(ctx context.Context, productID string, start, end time.Time) (quantity, revenue int64, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.sales {
		if !inRange(s.Date, start, end) {
			continue
		}
		for _, it := range s.Items {
			if it.ProductID == productID {
				quantity += it.Quantity
				revenue += it.TotalSale
			}
		}
	}
	return quantity, revenue, nil
}

func (r *SaleRepo) DailyTotalsForProduct(ctx context.Context, productID string, start, end time.Time) ([]repository.ProductDailyTotal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byDay := make(map[string]*repository.ProductDailyTotal)
	for _, s := range r.store.sales {
		if !inRange(s.Date, start, end) {
			continue
		}
		for _, it := range s.Items {
			if it.ProductID != productID {
				continue
			}
			key := dayKey(s.Date)
			t, ok := byDay[key]
			if !ok {
				t = &repository.ProductDailyTotal{Date: dayOf(s.Date)}
				byDay[key] = t
			}
			t.Quantity += it.Quantity
			t.Revenue += it.TotalSale
		}
	}

	list := make([]repository.ProductDailyTotal, 0, len(byDay))
	for _, t := range byDay {
		list = append(list, *t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

func (r *SaleRepo) QuantityStats(ctx context.Context, productID string) (repository.QuantityStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var stats repository.QuantityStats
	var sum, count int64
	for _, s := range r.store.sales {
		for _, it := range s.Items {
			if it.ProductID != productID {
				continue
			}
			if float64(it.Quantity) > stats.Max {
				stats.Max = float64(it.Quantity)
			}
			sum += it.Quantity
			count++
		}
	}
	if count > 0 {
		stats.Avg = float64(sum) / float64(count)
	}
	return stats, nil
}

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	store *Store
}

func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *order
	cp.Items = append([]entity.OrderItem(nil), order.Items...)
	r.store.orders = append(r.store.orders, &cp)
	return nil
}

func (r *OrderRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var list []*entity.Order
	for _, o := range r.store.orders {
		if inRange(o.Date, start, end) {
			cp := *o
			cp.Items = append([]entity.OrderItem(nil), o.Items...)
			list = append(list, &cp)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}
