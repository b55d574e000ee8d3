package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del puerto LedgerRepository sobre PostgreSQL.
// El libro es append-only: nunca hay UPDATE ni DELETE sobre inventory_transactions.
type LedgerRepo struct {
	q Querier
}

func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Append persiste una transacción del libro.
func (r *LedgerRepo) Append(ctx context.Context, tx *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, product_id, date, quantity, stock_balance, origin_kind, origin_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.ProductID, tx.Date, tx.Quantity, tx.StockBalance,
		string(tx.Origin.Kind), tx.Origin.ID, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// LatestBefore devuelve la transacción más reciente con fecha <= at, o nil si
// no hay ninguna. Los empates de fecha los resuelve created_at: gana la que
// se registró última.
func (r *LedgerRepo) LatestBefore(ctx context.Context, productID string, at time.Time) (*entity.InventoryTransaction, error) {
	query := `
		SELECT id, product_id, date, quantity, stock_balance, origin_kind, origin_id, created_at
		FROM inventory_transactions
		WHERE product_id = $1 AND date <= $2
		ORDER BY date DESC, created_at DESC
		LIMIT 1`
	var tx entity.InventoryTransaction
	var kind string
	err := r.q.QueryRow(ctx, query, productID, at).Scan(
		&tx.ID, &tx.ProductID, &tx.Date, &tx.Quantity, &tx.StockBalance,
		&kind, &tx.Origin.ID, &tx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest transaction: %w", err)
	}
	tx.Origin.Kind = entity.OriginKind(kind)
	return &tx, nil
}

// SaleQuantitiesByDay suma por día los valores absolutos de las transacciones
// negativas con origen venta; solo días con actividad. El rango es por día
// calendario: una transacción intradía del día de end cuenta aunque end venga
// truncado a medianoche.
func (r *LedgerRepo) SaleQuantitiesByDay(ctx context.Context, productID string, start, end time.Time) ([]repository.DailyQuantity, error) {
	query := `
		SELECT date_trunc('day', date) AS day, SUM(ABS(quantity))
		FROM inventory_transactions
		WHERE product_id = $1 AND origin_kind = $2 AND quantity < 0
		  AND date >= date_trunc('day', $3::timestamptz)
		  AND date < date_trunc('day', $4::timestamptz) + interval '1 day'
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, productID, string(entity.OriginSale), start, end)
	if err != nil {
		return nil, fmt.Errorf("sale quantities by day: %w", err)
	}
	defer rows.Close()

	var quantities []repository.DailyQuantity
	for rows.Next() {
		var q repository.DailyQuantity
		if err := rows.Scan(&q.Date, &q.Quantity); err != nil {
			return nil, fmt.Errorf("scan daily quantity: %w", err)
		}
		quantities = append(quantities, q)
	}
	return quantities, rows.Err()
}

// BalancesByDay devuelve el balance de cierre por día: el stock_balance de la
// última transacción de cada día con actividad. Mismo rango por día calendario
// que SaleQuantitiesByDay.
func (r *LedgerRepo) BalancesByDay(ctx context.Context, productID string, start, end time.Time) ([]repository.DailyBalance, error) {
	query := `
		SELECT DISTINCT ON (date_trunc('day', date))
		       date_trunc('day', date) AS day, stock_balance
		FROM inventory_transactions
		WHERE product_id = $1
		  AND date >= date_trunc('day', $2::timestamptz)
		  AND date < date_trunc('day', $3::timestamptz) + interval '1 day'
		ORDER BY day, date DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, productID, start, end)
	if err != nil {
		return nil, fmt.Errorf("balances by day: %w", err)
	}
	defer rows.Close()

	var balances []repository.DailyBalance
	for rows.Next() {
		var b repository.DailyBalance
		if err := rows.Scan(&b.Date, &b.Balance); err != nil {
			return nil, fmt.Errorf("scan daily balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
