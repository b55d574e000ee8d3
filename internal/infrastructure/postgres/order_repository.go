package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste el pedido y sus líneas. Llamar dentro de una transacción.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, provider_id, date, cost, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, order.ID, order.ProviderID, order.Date, order.Cost, order.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_cost, total_cost)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range order.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			order.ID, item.ProductID, item.Quantity, item.UnitCost, item.TotalCost,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// ListByDateRange devuelve los pedidos del rango inclusivo con sus líneas.
func (r *OrderRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Order, error) {
	query := `
		SELECT o.id, o.provider_id, o.date, o.cost, o.created_at,
		       oi.product_id, oi.quantity, oi.unit_cost, oi.total_cost
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.date BETWEEN $1 AND $2
		ORDER BY o.date, o.id`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	index := make(map[string]*entity.Order)
	for rows.Next() {
		var (
			id         string
			providerID string
			date       time.Time
			cost       int64
			createdAt  time.Time
			item       entity.OrderItem
		)
		err := rows.Scan(&id, &providerID, &date, &cost, &createdAt,
			&item.ProductID, &item.Quantity, &item.UnitCost, &item.TotalCost)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}

		order, ok := index[id]
		if !ok {
			order = &entity.Order{ID: id, ProviderID: providerID, Date: date, Cost: cost, CreatedAt: createdAt}
			index[id] = order
			orders = append(orders, order)
		}
		order.Items = append(order.Items, item)
	}
	return orders, rows.Err()
}
