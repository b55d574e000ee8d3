package forecast

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/application/ledger"
	"github.com/jhoicas/Analitica-api/internal/application/ports"
	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
	"github.com/jhoicas/Analitica-api/pkg/clock"
	"github.com/jhoicas/Analitica-api/pkg/logger"
)

// activeWindowMonths meses hacia atrás para considerar un producto activo.
const activeWindowMonths = 3

// Pipeline orquesta la corrida de pronóstico: recolecta la historia de ventas
// de los productos activos, la envía al servicio de predicción y persiste las
// predicciones devueltas en lotes idempotentes.
type Pipeline struct {
	products    repository.ProductRepository
	categories  repository.CategoryRepository
	predictions repository.PredictionRepository
	reader      *ledger.Reader
	client      ports.ForecastClient
	clk         clock.Clock
	log         *logger.Logger
	chunkSize   int
}

// NewPipeline crea el pipeline de pronóstico. chunkSize <= 0 usa 500.
func NewPipeline(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	predictions repository.PredictionRepository,
	reader *ledger.Reader,
	client ports.ForecastClient,
	clk clock.Clock,
	log *logger.Logger,
	chunkSize int,
) *Pipeline {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	return &Pipeline{
		products:    products,
		categories:  categories,
		predictions: predictions,
		reader:      reader,
		client:      client,
		clk:         clk,
		log:         log,
		chunkSize:   chunkSize,
	}
}

// Run ejecuta la corrida completa. daysToPredict y historicalDays deben ser
// positivos. Un error en cualquier etapa aborta la corrida sin persistir nada
// parcial de etapas posteriores; los lotes ya upserteados son inofensivos de
// re-aplicar porque el upsert es idempotente por (producto, fecha).
func (p *Pipeline) Run(ctx context.Context, daysToPredict, historicalDays int) error {
	if daysToPredict <= 0 || historicalDays <= 0 {
		return fmt.Errorf("%w: daysToPredict e historicalDays deben ser positivos", domain.ErrInvalidInput)
	}

	today := clock.Today(p.clk)

	content, err := p.collectHistory(ctx, today, historicalDays)
	if err != nil {
		p.log.Error().Err(err).Msg("corrida de pronóstico: falló la recolección")
		return err
	}
	if content == nil {
		p.log.Warn().Msg("corrida de pronóstico: sin productos activos, nada que enviar")
		return nil
	}

	dates := make([]string, 0, daysToPredict)
	for i := 0; i < daysToPredict; i++ {
		dates = append(dates, today.AddDate(0, 0, i).Format(dto.DateLayout))
	}

	result, err := p.client.PredictDemand(ctx, ports.PredictPayload{
		Filename:        fmt.Sprintf("sales_history_%s.csv", today.Format(dto.DateLayout)),
		Content:         content,
		PredictionDates: dates,
	})
	if err != nil {
		p.log.Error().Err(err).Msg("corrida de pronóstico: falló el servicio de predicción")
		return err
	}

	if err := p.persist(ctx, result.Predictions); err != nil {
		p.log.Error().Err(err).Msg("corrida de pronóstico: falló la persistencia")
		return err
	}

	p.log.Info().
		Int("predicciones", len(result.Predictions)).
		Int("dias", daysToPredict).
		Msg("corrida de pronóstico completada")
	return nil
}

// collectHistory arma el CSV de historia de ventas de los productos activos
// sobre la ventana [hoy-historicalDays, ayer]. Devuelve nil si no hay
// productos activos. Un producto sin categoría enlazada se omite con warning.
func (p *Pipeline) collectHistory(ctx context.Context, today time.Time, historicalDays int) ([]byte, error) {
	activeFrom := today.AddDate(0, -activeWindowMonths, 0)
	active, err := p.products.ListActiveSince(ctx, activeFrom)
	if err != nil {
		return nil, fmt.Errorf("listando productos activos: %w", err)
	}
	if len(active) == 0 {
		return nil, nil
	}

	catNames, err := p.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	start := today.AddDate(0, 0, -historicalDays)
	end := today.AddDate(0, 0, -1)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"source_product_id", "product_name", "category", "per_item_value", "in_stock", "date", "quantity"}); err != nil {
		return nil, fmt.Errorf("escribiendo cabecera csv: %w", err)
	}

	for _, prod := range active {
		catName, ok := catNames[prod.CategoryID]
		if !ok {
			p.log.Warn().
				Str("product_id", prod.ID).
				Str("category_id", prod.CategoryID).
				Msg("producto sin categoría enlazada, omitido de la historia")
			continue
		}

		balance, err := p.reader.BalanceAt(ctx, prod.ID, today)
		if err != nil {
			return nil, fmt.Errorf("balance del producto %s: %w", prod.ID, err)
		}

		history, err := p.reader.SalesHistory(ctx, prod.ID, start, end)
		if err != nil {
			return nil, fmt.Errorf("historia de ventas del producto %s: %w", prod.ID, err)
		}

		value := dto.Money(prod.Sale).String()
		stock := strconv.FormatInt(balance, 10)
		for _, day := range history {
			record := []string{
				prod.ID,
				prod.Name,
				catName,
				value,
				stock,
				day.Date.Format(dto.DateLayout),
				strconv.FormatInt(day.Amount, 10),
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("escribiendo fila csv: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("cerrando csv: %w", err)
	}
	return buf.Bytes(), nil
}

// persist upsertea las predicciones en lotes de chunkSize, parseando fechas
// YYYY-MM-DD. Una fila con fecha inválida aborta la corrida completa.
func (p *Pipeline) persist(ctx context.Context, records []ports.PredictionRecord) error {
	batch := make([]entity.Prediction, 0, len(records))
	for _, rec := range records {
		date, err := time.Parse(dto.DateLayout, rec.Date)
		if err != nil {
			return fmt.Errorf("%w: fecha de predicción inválida %q", domain.ErrInvalidInput, rec.Date)
		}
		batch = append(batch, entity.Prediction{
			ProductID: rec.ProductID,
			Date:      date,
			Value:     rec.Value,
		})
	}

	for from := 0; from < len(batch); from += p.chunkSize {
		to := from + p.chunkSize
		if to > len(batch) {
			to = len(batch)
		}
		if err := p.predictions.UpsertBatch(ctx, batch[from:to]); err != nil {
			return fmt.Errorf("upsert del lote [%d:%d]: %w", from, to, err)
		}
	}
	return nil
}

// Export envía al servicio un CSV con las ventas del rango [start, end],
// densificado por día y producto (días sin venta van con cantidad cero).
func (p *Pipeline) Export(ctx context.Context, exportType, format string, start, end time.Time) error {
	if exportType == "" || format == "" {
		return fmt.Errorf("%w: type y format son obligatorios", domain.ErrInvalidInput)
	}

	all, err := p.products.List(ctx)
	if err != nil {
		return fmt.Errorf("listando productos: %w", err)
	}
	catNames, err := p.categoryNames(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"product_id", "product_name", "category", "quantity", "per_item_value", "in_stock", "date"}); err != nil {
		return fmt.Errorf("escribiendo cabecera csv: %w", err)
	}

	for _, prod := range all {
		catName, ok := catNames[prod.CategoryID]
		if !ok {
			p.log.Warn().
				Str("product_id", prod.ID).
				Str("category_id", prod.CategoryID).
				Msg("producto sin categoría enlazada, omitido de la exportación")
			continue
		}

		balance, err := p.reader.BalanceAt(ctx, prod.ID, end)
		if err != nil {
			return fmt.Errorf("balance del producto %s: %w", prod.ID, err)
		}
		history, err := p.reader.SalesHistory(ctx, prod.ID, start, end)
		if err != nil {
			return fmt.Errorf("historia de ventas del producto %s: %w", prod.ID, err)
		}

		value := dto.Money(prod.Sale).String()
		stock := strconv.FormatInt(balance, 10)
		for _, day := range history {
			record := []string{
				prod.ID,
				prod.Name,
				catName,
				strconv.FormatInt(day.Amount, 10),
				value,
				stock,
				day.Date.Format(dto.DateLayout),
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("escribiendo fila csv: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("cerrando csv: %w", err)
	}

	payload := ports.ExportPayload{
		Filename: fmt.Sprintf("sales_export_%s.csv", clock.Today(p.clk).Format(dto.DateLayout)),
		Content:  buf.Bytes(),
		Type:     exportType,
		Format:   format,
	}
	if err := p.client.ExportSalesData(ctx, payload); err != nil {
		p.log.Error().Err(err).Str("type", exportType).Msg("exportación de ventas fallida")
		return err
	}

	p.log.Info().Str("type", exportType).Str("format", format).Msg("exportación de ventas enviada")
	return nil
}

func (p *Pipeline) categoryNames(ctx context.Context) (map[string]string, error) {
	cats, err := p.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listando categorías: %w", err)
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names, nil
}
