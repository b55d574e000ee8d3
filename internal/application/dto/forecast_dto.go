package dto

// RunForecastRequest parámetros de POST /api/forecast/run.
type RunForecastRequest struct {
	DaysToPredict  int `json:"days_to_predict"` // default 35
	HistoricalDays int `json:"historical_days"` // default 35
}

// ExportSalesRequest parámetros de POST /api/forecast/export.
type ExportSalesRequest struct {
	Type      string `json:"type"`       // ej. "historical", "daily"
	Format    string `json:"format"`     // ej. "csv"
	StartDate string `json:"start_date"` // opcional
	EndDate   string `json:"end_date"`   // opcional
}

// ForecastPointDTO un punto de pronóstico.
type ForecastPointDTO struct {
	Date  string  `json:"date"` // DD-MM-YYYY, formato de presentación del dashboard
	Value float64 `json:"value"`
}

// GroupForecastDTO serie de pronóstico de un grupo (categoría o producto).
type GroupForecastDTO struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Predictions []ForecastPointDTO `json:"predictions"`
}

// CategoryForecastDTO pronóstico por producto dentro de una categoría.
type CategoryForecastDTO struct {
	Category string             `json:"category"`
	Products []GroupForecastDTO `json:"products"`
}

// WeeklyForecastPointDTO demanda total de una semana, etiquetada por su lunes.
type WeeklyForecastPointDTO struct {
	Name  string  `json:"name"` // "Semana del DD-MM-YYYY"
	Value float64 `json:"value"`
}

// CategoryWeeklyForecastDTO demanda pronosticada de una categoría agregada por
// semana a partir del próximo lunes.
type CategoryWeeklyForecastDTO struct {
	ID    string                   `json:"id"`
	Name  string                   `json:"name"`
	Weeks []WeeklyForecastPointDTO `json:"weeks"`
}

// CategoryDemandTotalDTO demanda total de una categoría en los próximos 30 días.
type CategoryDemandTotalDTO struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
