package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/application/ledger"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
	"github.com/jhoicas/Analitica-api/pkg/logger"
)

// SalesMetrics calcula métricas descriptivas de ventas en un rango de fechas.
// totalItemsSold es siempre la suma de cantidades por línea, nunca el conteo
// de líneas: una sola definición en todo el motor.
type SalesMetrics struct {
	sales      repository.SaleRepository
	products   repository.ProductRepository
	categories repository.CategoryRepository
	log        *logger.Logger
}

// NewSalesMetrics construye el motor de métricas de ventas.
func NewSalesMetrics(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	log *logger.Logger,
) *SalesMetrics {
	return &SalesMetrics{sales: sales, products: products, categories: categories, log: log}
}

// Overview devuelve conteos y extremos de las ventas del rango.
// Un rango sin ventas produce ceros, nunca un error.
func (m *SalesMetrics) Overview(ctx context.Context, start, end time.Time) (*dto.SalesOverviewDTO, error) {
	sales, err := m.sales.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales overview: %w", err)
	}

	var (
		totalValueCents int64
		highestCents    int64
		lowestCents     int64 = math.MaxInt64
		totalItems      int64
		maxItemsInSale  int64
		minItemsInSale  int64 = math.MaxInt64
	)
	for _, s := range sales {
		items := s.TotalQuantity()

		totalValueCents += s.Sale
		totalItems += items
		if s.Sale > highestCents {
			highestCents = s.Sale
		}
		if s.Sale < lowestCents {
			lowestCents = s.Sale
		}
		if items > maxItemsInSale {
			maxItemsInSale = items
		}
		if items < minItemsInSale {
			minItemsInSale = items
		}
	}

	// Sin ventas: los mínimos centinela vuelven a cero
	if len(sales) == 0 {
		lowestCents = 0
		minItemsInSale = 0
	}

	return &dto.SalesOverviewDTO{
		SalesCount:         len(sales),
		TotalItemsSold:     totalItems,
		TotalSalesValue:    dto.Money(totalValueCents),
		HighestSale:        dto.Money(highestCents),
		LowestSale:         dto.Money(lowestCents),
		MaxItemsSoldInSale: maxItemsInSale,
		MinItemsSoldInSale: minItemsInSale,
	}, nil
}

// Detail devuelve los totales por día y los agregados por categoría y día.
// Un producto sin categoría enlazada se registra como warning y se omite; la
// agregación nunca se aborta por una anomalía de datos.
func (m *SalesMetrics) Detail(ctx context.Context, start, end time.Time) (*dto.SalesDetailDTO, error) {
	sales, err := m.sales.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales detail: %w", err)
	}

	categoryOf, categoryName, err := m.categoryLookup(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales detail: %w", err)
	}

	type dayTotal struct {
		date  time.Time
		cents int64
		items int64
	}
	type catDayTotal struct {
		date       time.Time
		categoryID string
		quantity   int64
		cents      int64
	}

	days := make(map[string]*dayTotal)
	catDays := make(map[string]*catDayTotal)

	for _, s := range sales {
		day := ledger.Truncate(s.Date)
		key := ledger.DayKey(day)

		dt, ok := days[key]
		if !ok {
			dt = &dayTotal{date: day}
			days[key] = dt
		}
		dt.cents += s.Sale
		dt.items += s.TotalQuantity()

		for _, it := range s.Items {
			categoryID, ok := categoryOf[it.ProductID]
			if !ok {
				m.log.Warn().
					Str("product_id", it.ProductID).
					Str("sale_id", s.ID).
					Msg("línea de venta sin categoría enlazada, omitida del detalle")
				continue
			}
			ck := categoryID + "|" + key
			ct, ok := catDays[ck]
			if !ok {
				ct = &catDayTotal{date: day, categoryID: categoryID}
				catDays[ck] = ct
			}
			ct.quantity += it.Quantity
			ct.cents += it.TotalSale
		}
	}

	allSales := make([]dto.DailySalesDTO, 0, len(days))
	for _, dt := range days {
		allSales = append(allSales, dto.DailySalesDTO{
			Date:      ledger.DayKey(dt.date),
			TotalSale: dto.Money(dt.cents),
			Items:     dt.items,
		})
	}
	sort.Slice(allSales, func(i, j int) bool { return allSales[i].Date < allSales[j].Date })

	perCategory := make([]dto.CategoryDailySalesDTO, 0, len(catDays))
	for _, ct := range catDays {
		perCategory = append(perCategory, dto.CategoryDailySalesDTO{
			Date:         ledger.DayKey(ct.date),
			CategoryID:   ct.categoryID,
			CategoryName: categoryName[ct.categoryID],
			Quantity:     ct.quantity,
			TotalSale:    dto.Money(ct.cents),
		})
	}
	// Serie de cada categoría ordenada por fecha ascendente; categorías por nombre
	sort.Slice(perCategory, func(i, j int) bool {
		if perCategory[i].CategoryName != perCategory[j].CategoryName {
			return perCategory[i].CategoryName < perCategory[j].CategoryName
		}
		return perCategory[i].Date < perCategory[j].Date
	})

	return &dto.SalesDetailDTO{AllSales: allSales, SalesPerCategory: perCategory}, nil
}

// categoryLookup arma los mapas producto→categoría y categoría→nombre de la foto actual.
func (m *SalesMetrics) categoryLookup(ctx context.Context) (map[string]string, map[string]string, error) {
	products, err := m.products.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listar productos: %w", err)
	}
	categories, err := m.categories.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listar categorías: %w", err)
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	categoryOf := make(map[string]string, len(products))
	for _, p := range products {
		if _, ok := names[p.CategoryID]; !ok {
			continue // el enlace roto se reporta al usarse
		}
		categoryOf[p.ID] = p.CategoryID
	}
	return categoryOf, names, nil
}
