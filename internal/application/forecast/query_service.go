package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
	"github.com/jhoicas/Analitica-api/pkg/clock"
)

// dashboardDateLayout formato de fecha que consume el dashboard.
const dashboardDateLayout = "02-01-2006"

// monthlyHorizonDays ventana de la vista de totales mensuales.
const monthlyHorizonDays = 30

// weeklyWindowWeeks semanas de la vista de totales semanales.
const weeklyWindowWeeks = 4

// QueryService expone las vistas de lectura sobre las predicciones persistidas.
type QueryService struct {
	predictions repository.PredictionRepository
	categories  repository.CategoryRepository
	clk         clock.Clock
}

func NewQueryService(
	predictions repository.PredictionRepository,
	categories repository.CategoryRepository,
	clk clock.Clock,
) *QueryService {
	return &QueryService{predictions: predictions, categories: categories, clk: clk}
}

// CategoryForecasts devuelve la demanda pronosticada por categoría desde hoy,
// una serie por categoría con los puntos en orden cronológico.
func (s *QueryService) CategoryForecasts(ctx context.Context) ([]dto.GroupForecastDTO, error) {
	today := clock.Today(s.clk)
	rows, err := s.predictions.CategoryDailyTotals(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("totales diarios por categoría: %w", err)
	}

	groups := make([]dto.GroupForecastDTO, 0)
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.CategoryID]
		if !ok {
			i = len(groups)
			index[row.CategoryID] = i
			groups = append(groups, dto.GroupForecastDTO{
				ID:          row.CategoryID,
				Name:        row.CategoryName,
				Predictions: make([]dto.ForecastPointDTO, 0),
			})
		}
		groups[i].Predictions = append(groups[i].Predictions, dto.ForecastPointDTO{
			Date:  row.Date.Format(dashboardDateLayout),
			Value: row.Value,
		})
	}
	return groups, nil
}

// ProductForecasts devuelve la demanda pronosticada por producto de una
// categoría desde hoy. Una categoría inexistente devuelve ErrCategoryNotFound.
func (s *QueryService) ProductForecasts(ctx context.Context, categoryID string) (*dto.CategoryForecastDTO, error) {
	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("obteniendo categoría %s: %w", categoryID, err)
	}

	today := clock.Today(s.clk)
	rows, err := s.predictions.ProductDailyForecast(ctx, categoryID, today)
	if err != nil {
		return nil, fmt.Errorf("pronóstico por producto de la categoría %s: %w", categoryID, err)
	}

	products := make([]dto.GroupForecastDTO, 0)
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.ProductID]
		if !ok {
			i = len(products)
			index[row.ProductID] = i
			products = append(products, dto.GroupForecastDTO{
				ID:          row.ProductID,
				Name:        row.ProductName,
				Predictions: make([]dto.ForecastPointDTO, 0),
			})
		}
		products[i].Predictions = append(products[i].Predictions, dto.ForecastPointDTO{
			Date:  row.Date.Format(dashboardDateLayout),
			Value: row.Value,
		})
	}

	return &dto.CategoryForecastDTO{Category: cat.Name, Products: products}, nil
}

// WeeklyTotals devuelve la demanda pronosticada de una categoría agregada por
// semana calendario: cuatro semanas a partir del próximo lunes, en orden
// cronológico y solo las semanas con predicciones. Una categoría inexistente
// devuelve ErrCategoryNotFound.
func (s *QueryService) WeeklyTotals(ctx context.Context, categoryID string) (*dto.CategoryWeeklyForecastDTO, error) {
	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("obteniendo categoría %s: %w", categoryID, err)
	}

	from := nextMonday(clock.Today(s.clk))
	until := from.AddDate(0, 0, 7*weeklyWindowWeeks) // exclusivo

	rows, err := s.predictions.ProductDailyForecast(ctx, categoryID, from)
	if err != nil {
		return nil, fmt.Errorf("pronóstico semanal de la categoría %s: %w", categoryID, err)
	}

	weeks := make([]dto.WeeklyForecastPointDTO, 0, weeklyWindowWeeks)
	index := make(map[string]int, weeklyWindowWeeks)
	for _, row := range rows {
		if !row.Date.Before(until) {
			continue
		}
		monday := weekStart(row.Date)
		key := monday.Format(dto.DateLayout)
		i, ok := index[key]
		if !ok {
			i = len(weeks)
			index[key] = i
			weeks = append(weeks, dto.WeeklyForecastPointDTO{
				Name: "Semana del " + monday.Format(dashboardDateLayout),
			})
		}
		weeks[i].Value += row.Value
	}

	return &dto.CategoryWeeklyForecastDTO{ID: cat.ID, Name: cat.Name, Weeks: weeks}, nil
}

// MonthlyTotals devuelve la demanda total pronosticada por categoría en los
// próximos 30 días, ordenada de mayor a menor demanda.
func (s *QueryService) MonthlyTotals(ctx context.Context) ([]dto.CategoryDemandTotalDTO, error) {
	today := clock.Today(s.clk)
	rows, err := s.predictions.CategoryTotalsInRange(ctx, today, today.AddDate(0, 0, monthlyHorizonDays))
	if err != nil {
		return nil, fmt.Errorf("totales mensuales por categoría: %w", err)
	}

	out := make([]dto.CategoryDemandTotalDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.CategoryDemandTotalDTO{
			ID:    row.CategoryID,
			Name:  row.CategoryName,
			Value: row.Value,
		})
	}
	return out, nil
}

// nextMonday devuelve el lunes estrictamente posterior al día dado.
func nextMonday(day time.Time) time.Time {
	offset := (int(time.Monday) - int(day.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, offset)
}

// weekStart devuelve el lunes de la semana del día dado.
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) - int(time.Monday) + 7) % 7
	return day.AddDate(0, 0, -offset)
}
