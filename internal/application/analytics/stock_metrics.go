package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/application/ledger"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
	"github.com/jhoicas/Analitica-api/pkg/clock"
)

// StockMetrics calcula métricas descriptivas de stock sobre una foto del
// catálogo. Lectura pura, sin efectos: puede correr concurrente y repetida
// sin coordinación.
type StockMetrics struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	reader     *ledger.Reader
	clk        clock.Clock
}

// NewStockMetrics construye el motor de métricas de stock.
func NewStockMetrics(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	reader *ledger.Reader,
	clk clock.Clock,
) *StockMetrics {
	return &StockMetrics{products: products, categories: categories, reader: reader, clk: clk}
}

// Overview devuelve el valor de inventario (Σ balance × costo), totales en
// stock, conteos dentro/fuera de stock y los listados de productos bajo el
// mínimo o sobre el máximo. Sin productos devuelve ceros, no error.
func (m *StockMetrics) Overview(ctx context.Context) (*dto.StockOverviewDTO, error) {
	products, err := m.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("stock overview: listar productos: %w", err)
	}

	now := m.clk.Now()
	overview := &dto.StockOverviewDTO{
		LowStockProducts:       []dto.ProductRefDTO{},
		ExcessiveStockProducts: []dto.ProductRefDTO{},
		ProductCount:           len(products),
	}

	var inventoryValueCents int64
	for _, p := range products {
		balance, err := m.reader.BalanceAt(ctx, p.ID, now)
		if err != nil {
			return nil, fmt.Errorf("stock overview: balance de %s: %w", p.ID, err)
		}

		inventoryValueCents += balance * p.Cost
		overview.TotalItemsInStock += balance

		if balance > 0 {
			overview.ProductsInStockCount++
		} else {
			overview.ProductsOutOfStockCount++
		}

		if balance < p.MinStockLevel {
			overview.LowStockProducts = append(overview.LowStockProducts,
				dto.ProductRefDTO{ID: p.ID, Name: p.Name})
		}
		if balance > p.MaxStockLevel {
			overview.ExcessiveStockProducts = append(overview.ExcessiveStockProducts,
				dto.ProductRefDTO{ID: p.ID, Name: p.Name})
		}
	}

	overview.InventoryValue = dto.Money(inventoryValueCents)
	return overview, nil
}

// Detail devuelve, para cada producto de la categoría, min, max, balance
// actual, rango y su clasificación de stock.
func (m *StockMetrics) Detail(ctx context.Context, categoryID string) (*dto.StockDetailDTO, error) {
	category, err := m.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("stock detail: %w", err)
	}

	products, err := m.products.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("stock detail: listar productos de %s: %w", categoryID, err)
	}

	now := m.clk.Now()
	detail := &dto.StockDetailDTO{
		Category: dto.CategoryRefDTO{ID: category.ID, Name: category.Name},
		Products: make([]dto.ProductStockDetailDTO, 0, len(products)),
	}
	for _, p := range products {
		balance, err := m.reader.BalanceAt(ctx, p.ID, now)
		if err != nil {
			return nil, fmt.Errorf("stock detail: balance de %s: %w", p.ID, err)
		}
		detail.Products = append(detail.Products, dto.ProductStockDetailDTO{
			ID:      p.ID,
			Name:    p.Name,
			Min:     p.MinStockLevel,
			Max:     p.MaxStockLevel,
			Current: balance,
			Range:   p.MaxStockLevel - p.MinStockLevel,
			Status:  StockStatus(balance, p.MinStockLevel, p.MaxStockLevel),
		})
	}
	return detail, nil
}

// StockStatus clasifica un balance frente a los niveles min/max.
// La igualdad en cualquiera de los dos bordes es within_range.
func StockStatus(balance, min, max int64) string {
	switch {
	case balance < min:
		return dto.StockStatusUnderstocked
	case balance > max:
		return dto.StockStatusOverstocked
	default:
		return dto.StockStatusWithinRange
	}
}
