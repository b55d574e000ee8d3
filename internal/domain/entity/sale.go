package entity

import "time"

// SaleItem es una línea de venta: producto, cantidad y valores en centavos.
type SaleItem struct {
	ProductID string
	Quantity  int64
	UnitSale  int64 // precio unitario al momento de la venta, en centavos
	TotalSale int64 // Quantity * UnitSale
	UnitCost  int64
	TotalCost int64
}

// Sale agrega una o más líneas de venta.
// Invariante: Sale (ingreso total, centavos) = Σ Items[i].TotalSale, y cada
// venta confirmada produce exactamente una transacción de inventario negativa
// por línea.
type Sale struct {
	ID        string
	Date      time.Time
	Sale      int64 // ingreso total en centavos
	Items     []SaleItem
	CreatedAt time.Time
}

// TotalQuantity suma las cantidades de todas las líneas.
func (s *Sale) TotalQuantity() int64 {
	var total int64
	for _, it := range s.Items {
		total += it.Quantity
	}
	return total
}
