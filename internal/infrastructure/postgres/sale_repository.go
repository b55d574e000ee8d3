package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus líneas. Llamar dentro de una transacción:
// la atomicidad con el libro de inventario la garantiza el TxRunner.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, date, sale, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, sale.ID, sale.Date, sale.Sale, sale.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (sale_id, product_id, quantity, unit_sale, total_sale, unit_cost, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, item := range sale.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			sale.ID, item.ProductID, item.Quantity,
			item.UnitSale, item.TotalSale, item.UnitCost, item.TotalCost,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// ListByDateRange devuelve las ventas del rango inclusivo con sus líneas.
func (r *SaleRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT s.id, s.date, s.sale, s.created_at,
		       si.product_id, si.quantity, si.unit_sale, si.total_sale, si.unit_cost, si.total_cost
		FROM sales s
		JOIN sale_items si ON si.sale_id = s.id
		WHERE s.date BETWEEN $1 AND $2
		ORDER BY s.date, s.id`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	index := make(map[string]*entity.Sale)
	for rows.Next() {
		var (
			id        string
			date      time.Time
			total     int64
			createdAt time.Time
			item      entity.SaleItem
		)
		err := rows.Scan(&id, &date, &total, &createdAt,
			&item.ProductID, &item.Quantity, &item.UnitSale, &item.TotalSale, &item.UnitCost, &item.TotalCost)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}

		sale, ok := index[id]
		if !ok {
			sale = &entity.Sale{ID: id, Date: date, Sale: total, CreatedAt: createdAt}
			index[id] = sale
			sales = append(sales, sale)
		}
		sale.Items = append(sale.Items, item)
	}
	return sales, rows.Err()
}

// TotalsByProduct agrega cantidad e ingreso por producto en el rango.
func (r *SaleRepo) TotalsByProduct(ctx context.Context, start, end time.Time) ([]repository.ProductSalesTotal, error) {
	query := `
		SELECT si.product_id, p.name, SUM(si.quantity), SUM(si.total_sale)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.date BETWEEN $1 AND $2
		GROUP BY si.product_id, p.name
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("totals by product: %w", err)
	}
	defer rows.Close()

	var totals []repository.ProductSalesTotal
	for rows.Next() {
		var t repository.ProductSalesTotal
		if err := rows.Scan(&t.ProductID, &t.Name, &t.Quantity, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// TotalsForProduct agrega cantidad e ingreso de un producto en el rango; sin ventas devuelve ceros.
func (r *SaleRepo) TotalsForProduct(ctx context.Context, productID string, start, end time.Time) (int64, int64, error) {
	query := `
		SELECT COALESCE(SUM(si.quantity), 0), COALESCE(SUM(si.total_sale), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE si.product_id = $1 AND s.date BETWEEN $2 AND $3`
	var quantity, revenue int64
	if err := r.q.QueryRow(ctx, query, productID, start, end).Scan(&quantity, &revenue); err != nil {
		return 0, 0, fmt.Errorf("totals for product: %w", err)
	}
	return quantity, revenue, nil
}

// DailyTotalsForProduct agrega por día calendario; solo días con actividad.
func (r *SaleRepo) DailyTotalsForProduct(ctx context.Context, productID string, start, end time.Time) ([]repository.ProductDailyTotal, error) {
	query := `
		SELECT date_trunc('day', s.date) AS day, SUM(si.quantity), SUM(si.total_sale)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE si.product_id = $1 AND s.date BETWEEN $2 AND $3
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, productID, start, end)
	if err != nil {
		return nil, fmt.Errorf("daily totals for product: %w", err)
	}
	defer rows.Close()

	var totals []repository.ProductDailyTotal
	for rows.Next() {
		var t repository.ProductDailyTotal
		if err := rows.Scan(&t.Date, &t.Quantity, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan daily totals: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// QuantityStats devuelve MAX y AVG de las cantidades por línea del producto.
func (r *SaleRepo) QuantityStats(ctx context.Context, productID string) (repository.QuantityStats, error) {
	query := `
		SELECT COALESCE(MAX(quantity), 0)::float8, COALESCE(AVG(quantity), 0)::float8
		FROM sale_items
		WHERE product_id = $1`
	var stats repository.QuantityStats
	if err := r.q.QueryRow(ctx, query, productID).Scan(&stats.Max, &stats.Avg); err != nil {
		return repository.QuantityStats{}, fmt.Errorf("quantity stats: %w", err)
	}
	return stats, nil
}
