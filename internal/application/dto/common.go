package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Analitica-api/internal/domain"
)

// ErrorResponse cuerpo de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateRangeRequest parámetros de rango de fechas de los endpoints de métricas.
type DateRangeRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD o YYYY-MM-DD HH:MM:SS
	EndDate   string `query:"end_date"`
}

var hundred = decimal.NewFromInt(100)

// Money convierte centavos a unidades mayores de moneda.
// Toda la agregación interna es sobre enteros; esta división ocurre una sola
// vez, en la frontera de salida, para evitar deriva de redondeo.
func Money(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

// Formatos de fecha canónicos aceptados por la API.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// ParseDate acepta el formato canónico de fecha o fecha-hora.
// Entrada malformada envuelve ErrInvalidInput (error del cliente, sin trabajo parcial).
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(DateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("fecha %q: %w", s, domain.ErrInvalidInput)
}

// ParseRange parsea un rango [start, end] inclusivo. Si end viene como fecha
// sin hora, se extiende al final de su día para que el rango cubra el día
// completo. start posterior a end es entrada inválida.
func ParseRange(startStr, endStr string) (start, end time.Time, err error) {
	start, err = ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date: %w", err)
	}
	end, err = ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date: %w", err)
	}
	if len(endStr) == len(DateLayout) {
		end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date posterior a end_date: %w", domain.ErrInvalidInput)
	}
	return start, end, nil
}
