package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain/entity"
)

// ProductSalesTotal total vendido y facturado por producto (resultado crudo de la DB).
// Revenue en centavos: la conversión a unidades mayores es cosa del caso de uso.
type ProductSalesTotal struct {
	ProductID string
	Name      string
	Quantity  int64
	Revenue   int64
}

// ProductDailyTotal total vendido y facturado de un producto en un día calendario.
type ProductDailyTotal struct {
	Date     time.Time
	Quantity int64
	Revenue  int64 // centavos
}

// QuantityStats máximo y promedio de cantidades por línea de venta de un producto.
// Alimenta el cálculo de stock de seguridad.
type QuantityStats struct {
	Max float64
	Avg float64
}

// SaleRepository define el puerto de persistencia para Sale y sus agregados.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error

	// ListByDateRange devuelve las ventas (con sus líneas) cuyo date cae en el
	// rango inclusivo, ordenadas por fecha ascendente.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error)

	// TotalsByProduct agrega cantidad e ingreso por producto en el rango (solo
	// productos con actividad).
	TotalsByProduct(ctx context.Context, start, end time.Time) ([]ProductSalesTotal, error)

	// TotalsForProduct agrega cantidad e ingreso de un solo producto en el rango.
	// Sin ventas devuelve ceros, no error.
	TotalsForProduct(ctx context.Context, productID string, start, end time.Time) (quantity, revenue int64, err error)

	// DailyTotalsForProduct agrega por día calendario dentro del rango; solo
	// días con actividad.
	DailyTotalsForProduct(ctx context.Context, productID string, start, end time.Time) ([]ProductDailyTotal, error)

	// QuantityStats devuelve MAX y AVG de las cantidades por línea de venta del
	// producto sobre todo su historial. Sin ventas devuelve ceros.
	QuantityStats(ctx context.Context, productID string) (QuantityStats, error)
}
