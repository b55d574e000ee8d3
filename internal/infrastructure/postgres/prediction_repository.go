package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

var _ repository.PredictionRepository = (*PredictionRepo)(nil)

// PredictionRepo implementación del puerto PredictionRepository sobre PostgreSQL.
type PredictionRepo struct {
	q Querier
}

func NewPredictionRepository(q Querier) *PredictionRepo {
	return &PredictionRepo{q: q}
}

// UpsertBatch inserta el lote en una sola sentencia multifila con conflicto
// por (product_id, date): una corrida repetida sobreescribe value, nunca duplica.
func (r *PredictionRepo) UpsertBatch(ctx context.Context, predictions []entity.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO predictions (product_id, date, value) VALUES `)
	args := make([]any, 0, len(predictions)*3)
	for i, p := range predictions {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 3
		fmt.Fprintf(&sb, "($%d, $%d, $%d)", n+1, n+2, n+3)
		args = append(args, p.ProductID, p.Date, p.Value)
	}
	sb.WriteString(` ON CONFLICT (product_id, date) DO UPDATE SET value = EXCLUDED.value`)

	if _, err := r.q.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("upsert predictions: %w", err)
	}
	return nil
}

// SumForProduct suma los valores pronosticados en [start, end); sin filas devuelve 0.
func (r *PredictionRepo) SumForProduct(ctx context.Context, productID string, start, end time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(value), 0)::float8
		FROM predictions
		WHERE product_id = $1 AND date >= $2 AND date < $3`
	var sum float64
	if err := r.q.QueryRow(ctx, query, productID, start, end).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum predictions: %w", err)
	}
	return sum, nil
}

// CategoryDailyTotals agrega la demanda pronosticada por categoría y día desde la fecha dada.
func (r *PredictionRepo) CategoryDailyTotals(ctx context.Context, from time.Time) ([]repository.CategoryDailyDemand, error) {
	query := `
		SELECT c.id, c.name, pr.date, SUM(pr.value)::float8
		FROM predictions pr
		JOIN products p ON p.id = pr.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE pr.date >= $1
		GROUP BY c.id, c.name, pr.date
		ORDER BY pr.date, c.name`
	rows, err := r.q.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("category daily totals: %w", err)
	}
	defer rows.Close()

	var totals []repository.CategoryDailyDemand
	for rows.Next() {
		var t repository.CategoryDailyDemand
		if err := rows.Scan(&t.CategoryID, &t.CategoryName, &t.Date, &t.Value); err != nil {
			return nil, fmt.Errorf("scan category daily total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// ProductDailyForecast devuelve las predicciones por producto de una categoría desde la fecha dada.
func (r *PredictionRepo) ProductDailyForecast(ctx context.Context, categoryID string, from time.Time) ([]repository.ProductDailyDemand, error) {
	query := `
		SELECT p.id, p.name, pr.date, pr.value::float8
		FROM predictions pr
		JOIN products p ON p.id = pr.product_id
		WHERE p.category_id = $1 AND pr.date >= $2
		ORDER BY pr.date, p.name`
	rows, err := r.q.Query(ctx, query, categoryID, from)
	if err != nil {
		return nil, fmt.Errorf("product daily forecast: %w", err)
	}
	defer rows.Close()

	var demands []repository.ProductDailyDemand
	for rows.Next() {
		var d repository.ProductDailyDemand
		if err := rows.Scan(&d.ProductID, &d.ProductName, &d.Date, &d.Value); err != nil {
			return nil, fmt.Errorf("scan product daily forecast: %w", err)
		}
		demands = append(demands, d)
	}
	return demands, rows.Err()
}

// CategoryTotalsInRange agrega el total pronosticado por categoría en el rango
// inclusivo, ordenado de mayor a menor demanda.
func (r *PredictionRepo) CategoryTotalsInRange(ctx context.Context, from, to time.Time) ([]repository.CategoryDemandTotal, error) {
	query := `
		SELECT c.id, c.name, SUM(pr.value)::float8 AS total
		FROM predictions pr
		JOIN products p ON p.id = pr.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE pr.date BETWEEN $1 AND $2
		GROUP BY c.id, c.name
		ORDER BY total DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("category totals in range: %w", err)
	}
	defer rows.Close()

	var totals []repository.CategoryDemandTotal
	for rows.Next() {
		var t repository.CategoryDemandTotal
		if err := rows.Scan(&t.CategoryID, &t.CategoryName, &t.Value); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
