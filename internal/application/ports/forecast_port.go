package ports

import "context"

// PredictionRecord un registro {product_id, date, value} del servicio de pronóstico.
type PredictionRecord struct {
	ProductID string  `json:"product_id"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Value     float64 `json:"value"`
}

// PredictPayload petición de pronóstico: archivo CSV con historia de ventas y
// las fechas futuras a pronosticar (metadata).
type PredictPayload struct {
	Filename        string
	Content         []byte
	PredictionDates []string // YYYY-MM-DD
}

// PredictResult respuesta parseada del servicio.
type PredictResult struct {
	Predictions []PredictionRecord
}

// ExportPayload envío de datos históricos de ventas al servicio.
type ExportPayload struct {
	Filename string
	Content  []byte
	Type     string // ej. "historical", "daily"
	Format   string // ej. "csv"
}

// ForecastClient es la frontera con el microservicio de pronóstico de demanda.
// Ambas operaciones son síncronas; una falla (transporte o estado no-2xx) se
// devuelve como error y NO se reintenta aquí: reintenta, si acaso, la capa de
// scheduling que despachó la corrida.
type ForecastClient interface {
	PredictDemand(ctx context.Context, payload PredictPayload) (*PredictResult, error)
	ExportSalesData(ctx context.Context, payload ExportPayload) error
}
