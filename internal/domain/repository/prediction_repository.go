package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain/entity"
)

// CategoryDailyDemand demanda pronosticada agregada por categoría y día.
type CategoryDailyDemand struct {
	CategoryID   string
	CategoryName string
	Date         time.Time
	Value        float64
}

// ProductDailyDemand pronóstico de un producto para un día (sin agregación:
// hay a lo sumo una predicción por producto y día).
type ProductDailyDemand struct {
	ProductID   string
	ProductName string
	Date        time.Time
	Value       float64
}

// CategoryDemandTotal demanda total pronosticada de una categoría en un rango.
type CategoryDemandTotal struct {
	CategoryID   string
	CategoryName string
	Value        float64
}

// PredictionRepository define el puerto de persistencia para Prediction.
// La restricción de unicidad (product_id, date) es el único mecanismo de
// control de concurrencia: upserts concurrentes a la misma clave los resuelve
// la política de conflicto del storage (last writer wins).
type PredictionRepository interface {
	// UpsertBatch inserta o actualiza un lote con clave de conflicto
	// (product_id, date), actualizando value. Un lote es una sola operación de
	// escritura: el troceo en lotes lo decide el pipeline.
	UpsertBatch(ctx context.Context, predictions []entity.Prediction) error

	// SumForProduct suma los valores pronosticados del producto en [start, end)
	// (fin exclusivo). Sin predicciones devuelve 0.
	SumForProduct(ctx context.Context, productID string, start, end time.Time) (float64, error)

	// CategoryDailyTotals agrega por categoría y día desde la fecha dada,
	// ordenado por fecha ascendente.
	CategoryDailyTotals(ctx context.Context, from time.Time) ([]CategoryDailyDemand, error)

	// ProductDailyForecast devuelve las predicciones por producto de una
	// categoría desde la fecha dada, ordenadas por fecha ascendente.
	ProductDailyForecast(ctx context.Context, categoryID string, from time.Time) ([]ProductDailyDemand, error)

	// CategoryTotalsInRange agrega el total por categoría en el rango inclusivo,
	// ordenado por demanda descendente.
	CategoryTotalsInRange(ctx context.Context, from, to time.Time) ([]CategoryDemandTotal, error)
}
