package reorder

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/application/ledger"
	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
	"github.com/jhoicas/Analitica-api/pkg/clock"
	"github.com/jhoicas/Analitica-api/pkg/logger"
)

// demandWindowDays días de demanda pronosticada que cubre una orden de reorden.
const demandWindowDays = 7

// UseCase calcula sugerencias de reorden para los productos de un proveedor
// dentro de una categoría, cruzando demanda pronosticada, stock de seguridad
// y balance actual.
type UseCase struct {
	products    repository.ProductRepository
	providers   repository.ProviderRepository
	categories  repository.CategoryRepository
	sales       repository.SaleRepository
	predictions repository.PredictionRepository
	reader      *ledger.Reader
	clk         clock.Clock
	log         *logger.Logger
}

func NewUseCase(
	products repository.ProductRepository,
	providers repository.ProviderRepository,
	categories repository.CategoryRepository,
	sales repository.SaleRepository,
	predictions repository.PredictionRepository,
	reader *ledger.Reader,
	clk clock.Clock,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		products:    products,
		providers:   providers,
		categories:  categories,
		sales:       sales,
		predictions: predictions,
		reader:      reader,
		clk:         clk,
		log:         log,
	}
}

// Suggestions arma la recomendación por producto. La ventana de demanda
// arranca cuando llegaría la orden (hoy + lead time del proveedor) y cubre
// los 7 días siguientes.
func (u *UseCase) Suggestions(ctx context.Context, providerID, categoryID string) ([]dto.ReorderSuggestionDTO, error) {
	provider, err := u.providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, fmt.Errorf("obteniendo proveedor %s: %w", providerID, err)
	}
	if _, err := u.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("obteniendo categoría %s: %w", categoryID, err)
	}

	products, err := u.products.ListByProviderAndCategory(ctx, providerID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listando productos del proveedor: %w", err)
	}

	now := u.clk.Now()
	windowStart := clock.Today(u.clk).AddDate(0, 0, provider.LeadDays)
	windowEnd := windowStart.AddDate(0, 0, demandWindowDays)

	suggestions := make([]dto.ReorderSuggestionDTO, 0, len(products))
	for _, prod := range products {
		predicted, err := u.predictions.SumForProduct(ctx, prod.ID, windowStart, windowEnd)
		if err != nil {
			return nil, fmt.Errorf("demanda pronosticada del producto %s: %w", prod.ID, err)
		}

		stats, err := u.sales.QuantityStats(ctx, prod.ID)
		if err != nil {
			return nil, fmt.Errorf("estadísticas de venta del producto %s: %w", prod.ID, err)
		}

		balance, err := u.reader.BalanceAt(ctx, prod.ID, now)
		if err != nil {
			return nil, fmt.Errorf("balance del producto %s: %w", prod.ID, err)
		}

		safety := SafetyStock(stats.Max, stats.Avg, provider.LeadDays)
		amount := ReorderAmount(predicted, safety, balance)

		cost := dto.Money(prod.Cost)
		suggestions = append(suggestions, dto.ReorderSuggestionDTO{
			ProductID:       prod.ID,
			ProductName:     prod.Name,
			Unit:            prod.Unit,
			AmountPerUnit:   prod.AmountPerUnit,
			StockBalance:    balance,
			PredictedDemand: int64(math.Round(predicted)),
			SafetyStock:     safety,
			ReorderAmount:   amount,
			CostPerUnit:     cost,
			TotalCost:       cost.Mul(decimal.NewFromInt(amount)),
		})
	}

	u.log.Debug().
		Str("provider_id", providerID).
		Str("category_id", categoryID).
		Int("productos", len(suggestions)).
		Msg("sugerencias de reorden calculadas")
	return suggestions, nil
}

// SafetyStock calcula el colchón de seguridad: la brecha entre la demanda
// diaria máxima y la promedio, sostenida durante el lead time. Nunca negativo.
func SafetyStock(maxDaily, avgDaily float64, leadDays int) int64 {
	safety := math.Round((maxDaily - avgDaily) * float64(leadDays))
	if safety < 0 {
		return 0
	}
	return int64(safety)
}

// ReorderAmount calcula la cantidad a reordenar para cubrir la demanda
// pronosticada más el colchón, descontando el balance actual. Un balance
// negativo (sobreventa) aumenta la cantidad sugerida. Nunca negativo.
func ReorderAmount(predicted float64, safety, balance int64) int64 {
	amount := math.Round(predicted + float64(safety) - float64(balance))
	if amount < 0 {
		return 0
	}
	return int64(amount)
}
