package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
)

// OverviewMetrics combina los tres bloques de overview (stock, ventas y
// productos) en una sola respuesta. Las tres consultas son independientes y
// de solo lectura, así que corren en paralelo.
type OverviewMetrics struct {
	stock    *StockMetrics
	sales    *SalesMetrics
	products *ProductsMetrics
}

// NewOverviewMetrics construye el agregador de overview.
func NewOverviewMetrics(stock *StockMetrics, sales *SalesMetrics, products *ProductsMetrics) *OverviewMetrics {
	return &OverviewMetrics{stock: stock, sales: sales, products: products}
}

// Metrics devuelve los tres bloques del rango dado.
func (m *OverviewMetrics) Metrics(ctx context.Context, start, end time.Time) (*dto.OverviewDTO, error) {
	type stockResult struct {
		dto *dto.StockOverviewDTO
		err error
	}
	type salesResult struct {
		dto *dto.SalesOverviewDTO
		err error
	}
	type productsResult struct {
		dto *dto.ProductsOverviewDTO
		err error
	}

	stockCh := make(chan stockResult, 1)
	salesCh := make(chan salesResult, 1)
	productsCh := make(chan productsResult, 1)

	go func() {
		d, err := m.stock.Overview(ctx)
		stockCh <- stockResult{d, err}
	}()
	go func() {
		d, err := m.sales.Overview(ctx, start, end)
		salesCh <- salesResult{d, err}
	}()
	go func() {
		d, err := m.products.Overview(ctx, start, end)
		productsCh <- productsResult{d, err}
	}()

	stockRes := <-stockCh
	salesRes := <-salesCh
	productsRes := <-productsCh

	if stockRes.err != nil {
		return nil, fmt.Errorf("overview: stock: %w", stockRes.err)
	}
	if salesRes.err != nil {
		return nil, fmt.Errorf("overview: ventas: %w", salesRes.err)
	}
	if productsRes.err != nil {
		return nil, fmt.Errorf("overview: productos: %w", productsRes.err)
	}

	return &dto.OverviewDTO{
		Stock:    *stockRes.dto,
		Sales:    *salesRes.dto,
		Products: *productsRes.dto,
	}, nil
}
