package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error)
	ListByProviderAndCategory(ctx context.Context, providerID, categoryID string) ([]*entity.Product, error)

	// ListActiveSince devuelve los productos con al menos una venta desde la
	// fecha dada ("activos" para el pipeline de pronóstico).
	ListActiveSince(ctx context.Context, since time.Time) ([]*entity.Product, error)
}
