package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Order, error)
}
