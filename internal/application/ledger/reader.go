package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

// DailyAmount un valor por día calendario; pieza de toda serie densa.
type DailyAmount struct {
	Date   time.Time
	Amount int64
}

// Reader reconstruye el balance de stock de un producto en cualquier instante a
// partir del libro de transacciones, y arma las series densas de ventas que
// consumen el motor de métricas y el pipeline de pronóstico.
type Reader struct {
	products repository.ProductRepository
	ledger   repository.LedgerRepository
}

// NewReader construye el lector del libro.
func NewReader(products repository.ProductRepository, ledgerRepo repository.LedgerRepository) *Reader {
	return &Reader{products: products, ledger: ledgerRepo}
}

// BalanceAt devuelve el stock_balance de la transacción más reciente del
// producto con fecha <= at, o 0 si el libro está vacío hasta ese instante.
// Falla con ErrProductNotFound solo si el producto no existe.
func (r *Reader) BalanceAt(ctx context.Context, productID string, at time.Time) (int64, error) {
	if _, err := r.products.GetByID(ctx, productID); err != nil {
		return 0, fmt.Errorf("ledger: producto %s: %w", productID, err)
	}

	tx, err := r.ledger.LatestBefore(ctx, productID, at)
	if err != nil {
		return 0, fmt.Errorf("ledger: última transacción de %s: %w", productID, err)
	}
	if tx == nil {
		// Libro vacío: balance cero, no un error.
		return 0, nil
	}
	return tx.StockBalance, nil
}

// SalesHistory devuelve la serie densa de cantidades vendidas por día en el
// rango inclusivo: exactamente end-start+1 entradas, con 0 en los días sin
// ventas. La cantidad es el valor absoluto de las transacciones negativas con
// origen venta. El que llama nunca tiene que distinguir "sin datos" de "cero".
func (r *Reader) SalesHistory(ctx context.Context, productID string, start, end time.Time) ([]DailyAmount, error) {
	if _, err := r.products.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("ledger: producto %s: %w", productID, err)
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	sold, err := r.ledger.SaleQuantitiesByDay(ctx, productID, start, end)
	if err != nil {
		return nil, fmt.Errorf("ledger: ventas por día de %s: %w", productID, err)
	}

	byDay := make(map[string]int64, len(sold))
	for _, d := range sold {
		byDay[DayKey(d.Date)] = d.Quantity
	}
	return densify(start, end, byDay), nil
}

// BalanceHistory devuelve la serie densa de balances de cierre por día en el
// rango inclusivo, con 0 en los días sin transacciones.
func (r *Reader) BalanceHistory(ctx context.Context, productID string, start, end time.Time) ([]DailyAmount, error) {
	if _, err := r.products.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("ledger: producto %s: %w", productID, err)
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	balances, err := r.ledger.BalancesByDay(ctx, productID, start, end)
	if err != nil {
		return nil, fmt.Errorf("ledger: balances por día de %s: %w", productID, err)
	}

	byDay := make(map[string]int64, len(balances))
	for _, b := range balances {
		byDay[DayKey(b.Date)] = b.Balance
	}
	return densify(start, end, byDay), nil
}

func validateRange(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("ledger: rango %s..%s: %w",
			start.Format("2006-01-02"), end.Format("2006-01-02"), domain.ErrInvalidInput)
	}
	return nil
}

func densify(start, end time.Time, byDay map[string]int64) []DailyAmount {
	days := DateRange(start, end)
	series := make([]DailyAmount, 0, len(days))
	for _, day := range days {
		series = append(series, DailyAmount{Date: day, Amount: byDay[DayKey(day)]})
	}
	return series
}

// DateRange genera todos los días calendario entre start y end, ambos incluidos.
func DateRange(start, end time.Time) []time.Time {
	start = Truncate(start)
	end = Truncate(end)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Truncate recorta un instante al inicio de su día calendario.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey formatea un día como clave YYYY-MM-DD para mapas por día.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
