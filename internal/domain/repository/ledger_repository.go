package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain/entity"
)

// DailyQuantity cantidad agregada de un día calendario (resultado crudo de la DB).
type DailyQuantity struct {
	Date     time.Time
	Quantity int64
}

// DailyBalance balance de cierre de un día calendario: el stock_balance de la
// última transacción de ese día.
type DailyBalance struct {
	Date    time.Time
	Balance int64
}

// LedgerRepository define el puerto de persistencia del libro de inventario.
// El motor nunca atraviesa grafos de objetos: solo usa estas consultas de rango.
type LedgerRepository interface {
	// Append persiste una transacción del libro. El balance corrido ya viene
	// calculado por el caso de uso que la origina.
	Append(ctx context.Context, tx *entity.InventoryTransaction) error

	// LatestBefore devuelve la transacción más reciente del producto con fecha <= at,
	// o nil si el libro está vacío hasta ese instante (no es un error).
	LatestBefore(ctx context.Context, productID string, at time.Time) (*entity.InventoryTransaction, error)

	// SaleQuantitiesByDay devuelve, por día calendario, la suma de los valores
	// absolutos de las transacciones negativas con origen venta, dentro del rango
	// inclusivo. El rango se compara por día: una transacción a cualquier hora
	// del día de end pertenece al rango aunque end venga truncado a medianoche.
	// Solo incluye días con actividad: la serie densa la arma el lector.
	SaleQuantitiesByDay(ctx context.Context, productID string, start, end time.Time) ([]DailyQuantity, error)

	// BalancesByDay devuelve el balance de cierre por día calendario dentro del
	// rango inclusivo, solo para días con transacciones. Mismo criterio por día
	// que SaleQuantitiesByDay.
	BalancesByDay(ctx context.Context, productID string, start, end time.Time) ([]DailyBalance, error)
}
