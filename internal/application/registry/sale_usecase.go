package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/pkg/clock"
	"github.com/jhoicas/Analitica-api/pkg/logger"
)

// SaleLineInput una línea de venta entrante: los precios se toman del
// producto al momento de registrar.
type SaleLineInput struct {
	ProductID string
	Quantity  int64
}

// SaleInput datos para registrar una venta.
type SaleInput struct {
	Date  time.Time // cero = ahora
	Lines []SaleLineInput
}

// SaleUseCase registra ventas: el documento, sus líneas y una transacción de
// inventario negativa por línea, todo dentro de una sola transacción.
type SaleUseCase struct {
	runner TxRunner
	clk    clock.Clock
	log    *logger.Logger
}

func NewSaleUseCase(runner TxRunner, clk clock.Clock, log *logger.Logger) *SaleUseCase {
	return &SaleUseCase{runner: runner, clk: clk, log: log}
}

// Create registra la venta. Cada línea descuenta stock: el balance corrido se
// calcula a partir de la última transacción del producto. El balance puede
// quedar negativo (sobreventa); eso no es un error aquí, lo refleja el libro.
func (u *SaleUseCase) Create(ctx context.Context, input SaleInput) (*entity.Sale, error) {
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("%w: la venta necesita al menos una línea", domain.ErrInvalidInput)
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
		}
	}

	now := u.clk.Now()
	date := input.Date
	if date.IsZero() {
		date = now
	}

	// Una línea por producto: líneas repetidas se consolidan antes de tocar el
	// libro. Dos transacciones del mismo producto con la misma fecha y el mismo
	// created_at dejarían el balance corrido en un orden indefinido.
	lines := mergeSaleLines(input.Lines)

	sale := &entity.Sale{
		ID:        uuid.NewString(),
		Date:      date,
		CreatedAt: now,
	}

	err := u.runner.Run(ctx, func(ctx context.Context, repos Repos) error {
		for _, line := range lines {
			prod, err := repos.Products.GetByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.ErrProductNotFound
				}
				return fmt.Errorf("obteniendo producto %s: %w", line.ProductID, err)
			}

			item := entity.SaleItem{
				ProductID: prod.ID,
				Quantity:  line.Quantity,
				UnitSale:  prod.Sale,
				TotalSale: prod.Sale * line.Quantity,
				UnitCost:  prod.Cost,
				TotalCost: prod.Cost * line.Quantity,
			}
			sale.Items = append(sale.Items, item)
			sale.Sale += item.TotalSale
		}

		if err := repos.Sales.Create(ctx, sale); err != nil {
			return fmt.Errorf("creando venta: %w", err)
		}

		for _, item := range sale.Items {
			prev, err := previousBalance(ctx, repos, item.ProductID, date)
			if err != nil {
				return err
			}
			tx := &entity.InventoryTransaction{
				ID:           uuid.NewString(),
				ProductID:    item.ProductID,
				Date:         date,
				Quantity:     -item.Quantity,
				StockBalance: prev - item.Quantity,
				Origin:       entity.TransactionOrigin{Kind: entity.OriginSale, ID: sale.ID},
				CreatedAt:    now,
			}
			if err := repos.Ledger.Append(ctx, tx); err != nil {
				return fmt.Errorf("registrando transacción de inventario: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().
		Str("sale_id", sale.ID).
		Int("lineas", len(sale.Items)).
		Int64("total_centavos", sale.Sale).
		Msg("venta registrada")
	return sale, nil
}

// mergeSaleLines suma las cantidades de las líneas repetidas de un producto,
// preservando el orden de primera aparición.
func mergeSaleLines(lines []SaleLineInput) []SaleLineInput {
	merged := make([]SaleLineInput, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged
}

// previousBalance devuelve el balance del producto justo antes de la nueva
// transacción: cero si el libro está vacío.
func previousBalance(ctx context.Context, repos Repos, productID string, at time.Time) (int64, error) {
	latest, err := repos.Ledger.LatestBefore(ctx, productID, at)
	if err != nil {
		return 0, fmt.Errorf("última transacción del producto %s: %w", productID, err)
	}
	if latest == nil {
		return 0, nil
	}
	return latest.StockBalance, nil
}
