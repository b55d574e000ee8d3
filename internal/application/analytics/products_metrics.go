package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/application/ledger"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
	"github.com/jhoicas/Analitica-api/pkg/logger"
)

const rankingSize = 5

// ProductsMetrics calcula métricas de desempeño por producto: rankings de
// venta e ingreso, detalle por categoría y las series diarias de un producto.
type ProductsMetrics struct {
	sales      repository.SaleRepository
	products   repository.ProductRepository
	categories repository.CategoryRepository
	providers  repository.ProviderRepository
	reader     *ledger.Reader
	log        *logger.Logger
}

// NewProductsMetrics construye el motor de métricas de productos.
func NewProductsMetrics(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	providers repository.ProviderRepository,
	reader *ledger.Reader,
	log *logger.Logger,
) *ProductsMetrics {
	return &ProductsMetrics{
		sales:      sales,
		products:   products,
		categories: categories,
		providers:  providers,
		reader:     reader,
		log:        log,
	}
}

// Overview devuelve los rankings top/least 5 por cantidad vendida y por
// ingreso, sobre los productos con actividad en el rango. Los empates se
// resuelven por orden estable de iteración.
func (m *ProductsMetrics) Overview(ctx context.Context, start, end time.Time) (*dto.ProductsOverviewDTO, error) {
	totals, err := m.sales.TotalsByProduct(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("products overview: %w", err)
	}

	byQuantityDesc := rankBy(totals, func(a, b repository.ProductSalesTotal) bool { return a.Quantity > b.Quantity })
	byQuantityAsc := rankBy(totals, func(a, b repository.ProductSalesTotal) bool { return a.Quantity < b.Quantity })
	byRevenueDesc := rankBy(totals, func(a, b repository.ProductSalesTotal) bool { return a.Revenue > b.Revenue })
	byRevenueAsc := rankBy(totals, func(a, b repository.ProductSalesTotal) bool { return a.Revenue < b.Revenue })

	return &dto.ProductsOverviewDTO{
		TopSellingProducts:     toProductSales(byQuantityDesc),
		LeastSellingProducts:   toProductSales(byQuantityAsc),
		HighestRevenueProducts: toProductSales(byRevenueDesc),
		LowestRevenueProducts:  toProductSales(byRevenueAsc),
	}, nil
}

// Detail devuelve, por producto de la categoría, lo vendido y facturado en el
// rango más los balances de stock al inicio y al final. Un proveedor no
// enlazado se reporta como warning y el producto se omite, sin abortar la corrida.
func (m *ProductsMetrics) Detail(ctx context.Context, categoryID string, start, end time.Time) ([]dto.ProductDetailDTO, error) {
	category, err := m.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("products detail: %w", err)
	}
	products, err := m.products.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("products detail: listar productos: %w", err)
	}

	details := make([]dto.ProductDetailDTO, 0, len(products))
	for _, p := range products {
		provider, err := m.providers.GetByID(ctx, p.ProviderID)
		if err != nil {
			m.log.Warn().
				Str("product_id", p.ID).
				Str("provider_id", p.ProviderID).
				Err(err).
				Msg("producto sin proveedor enlazado, omitido del detalle")
			continue
		}

		quantity, revenue, err := m.sales.TotalsForProduct(ctx, p.ID, start, end)
		if err != nil {
			return nil, fmt.Errorf("products detail: totales de %s: %w", p.ID, err)
		}
		initial, err := m.reader.BalanceAt(ctx, p.ID, start)
		if err != nil {
			return nil, fmt.Errorf("products detail: balance inicial de %s: %w", p.ID, err)
		}
		final, err := m.reader.BalanceAt(ctx, p.ID, end)
		if err != nil {
			return nil, fmt.Errorf("products detail: balance final de %s: %w", p.ID, err)
		}

		details = append(details, dto.ProductDetailDTO{
			ID:                  p.ID,
			Name:                p.Name,
			Category:            category.Name,
			Provider:            provider.Name,
			Sale:                dto.Money(p.Sale),
			TotalQuantitySold:   quantity,
			TotalSalesRevenue:   dto.Money(revenue),
			InitialStockBalance: initial,
			FinalStockBalance:   final,
		})
	}
	return details, nil
}

// Series devuelve las tres series diarias densas de un producto: cantidad
// vendida, ingreso y balance de stock, cubriendo cada día del rango inclusive.
func (m *ProductsMetrics) Series(ctx context.Context, productID string, start, end time.Time) (*dto.ProductSeriesDTO, error) {
	quantity, err := m.reader.SalesHistory(ctx, productID, start, end)
	if err != nil {
		return nil, fmt.Errorf("product series: %w", err)
	}
	balance, err := m.reader.BalanceHistory(ctx, productID, start, end)
	if err != nil {
		return nil, fmt.Errorf("product series: %w", err)
	}

	dailyRevenue, err := m.sales.DailyTotalsForProduct(ctx, productID, start, end)
	if err != nil {
		return nil, fmt.Errorf("product series: ingresos diarios: %w", err)
	}
	revenueByDay := make(map[string]int64, len(dailyRevenue))
	for _, d := range dailyRevenue {
		revenueByDay[ledger.DayKey(d.Date)] = d.Revenue
	}

	series := &dto.ProductSeriesDTO{
		QuantitySold: make([]dto.SeriesPointDTO, 0, len(quantity)),
		SalesRevenue: make([]dto.SeriesPointDTO, 0, len(quantity)),
		StockBalance: make([]dto.SeriesPointDTO, 0, len(balance)),
	}
	for _, p := range quantity {
		series.QuantitySold = append(series.QuantitySold, dto.SeriesPointDTO{
			Date:   ledger.DayKey(p.Date),
			Amount: decimal.NewFromInt(p.Amount),
		})
		series.SalesRevenue = append(series.SalesRevenue, dto.SeriesPointDTO{
			Date:   ledger.DayKey(p.Date),
			Amount: dto.Money(revenueByDay[ledger.DayKey(p.Date)]),
		})
	}
	for _, p := range balance {
		series.StockBalance = append(series.StockBalance, dto.SeriesPointDTO{
			Date:   ledger.DayKey(p.Date),
			Amount: decimal.NewFromInt(p.Amount),
		})
	}
	return series, nil
}

// rankBy ordena una copia con sort.SliceStable bajo el comparador dado y corta al tope.
func rankBy(totals []repository.ProductSalesTotal, less func(a, b repository.ProductSalesTotal) bool) []repository.ProductSalesTotal {
	ranked := append([]repository.ProductSalesTotal(nil), totals...)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	if len(ranked) > rankingSize {
		ranked = ranked[:rankingSize]
	}
	return ranked
}

func toProductSales(totals []repository.ProductSalesTotal) []dto.ProductSalesDTO {
	list := make([]dto.ProductSalesDTO, 0, len(totals))
	for _, t := range totals {
		list = append(list, dto.ProductSalesDTO{
			ID:            t.ProductID,
			Name:          t.Name,
			TotalQuantity: t.Quantity,
			TotalRevenue:  dto.Money(t.Revenue),
		})
	}
	return list
}
