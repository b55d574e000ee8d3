package entity

import "time"

// Prediction es el pronóstico de demanda de un producto para un día calendario.
// Única por (ProductID, Date): una escritura posterior con la misma clave
// sobreescribe Value (last write wins), nunca duplica.
type Prediction struct {
	ProductID string
	Date      time.Time // granularidad de día
	Value     float64   // cantidad pronosticada
}
