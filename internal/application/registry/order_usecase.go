package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
	"github.com/jhoicas/Analitica-api/pkg/clock"
	"github.com/jhoicas/Analitica-api/pkg/logger"
)

// OrderLineInput una línea de pedido entrante.
type OrderLineInput struct {
	ProductID string
	Quantity  int64
}

// OrderInput datos para registrar un pedido a proveedor.
type OrderInput struct {
	ProviderID string
	Date       time.Time // cero = ahora
	Lines      []OrderLineInput
}

// OrderUseCase registra pedidos a proveedor: el documento, sus líneas y una
// transacción de inventario positiva por línea, dentro de una sola transacción.
type OrderUseCase struct {
	runner    TxRunner
	providers repository.ProviderRepository
	clk       clock.Clock
	log       *logger.Logger
}

func NewOrderUseCase(runner TxRunner, providers repository.ProviderRepository, clk clock.Clock, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{runner: runner, providers: providers, clk: clk, log: log}
}

// Create registra el pedido. Cada línea aumenta stock con el balance corrido
// calculado a partir de la última transacción del producto.
func (u *OrderUseCase) Create(ctx context.Context, input OrderInput) (*entity.Order, error) {
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("%w: el pedido necesita al menos una línea", domain.ErrInvalidInput)
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
		}
	}

	if _, err := u.providers.GetByID(ctx, input.ProviderID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, fmt.Errorf("obteniendo proveedor %s: %w", input.ProviderID, err)
	}

	now := u.clk.Now()
	date := input.Date
	if date.IsZero() {
		date = now
	}

	// Igual que en ventas: una línea por producto antes de tocar el libro.
	lines := mergeOrderLines(input.Lines)

	order := &entity.Order{
		ID:         uuid.NewString(),
		ProviderID: input.ProviderID,
		Date:       date,
		CreatedAt:  now,
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

			item := entity.OrderItem{
				ProductID: prod.ID,
				Quantity:  line.Quantity,
				UnitCost:  prod.Cost,
				TotalCost: prod.Cost * line.Quantity,
			}
			order.Items = append(order.Items, item)
			order.Cost += item.TotalCost
		}

		if err := repos.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("creando pedido: %w", err)
		}

		for _, item := range order.Items {
			prev, err := previousBalance(ctx, repos, item.ProductID, date)
			if err != nil {
				return err
			}
			tx := &entity.InventoryTransaction{
				ID:           uuid.NewString(),
				ProductID:    item.ProductID,
				Date:         date,
				Quantity:     item.Quantity,
				StockBalance: prev + item.Quantity,
				Origin:       entity.TransactionOrigin{Kind: entity.OriginOrder, ID: order.ID},
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
		Str("order_id", order.ID).
		Str("provider_id", order.ProviderID).
		Int("lineas", len(order.Items)).
		Msg("pedido registrado")
	return order, nil
}

// mergeOrderLines suma las cantidades de las líneas repetidas de un producto,
// preservando el orden de primera aparición.
func mergeOrderLines(lines []OrderLineInput) []OrderLineInput {
	merged := make([]OrderLineInput, 0, len(lines))
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
