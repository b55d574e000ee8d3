package entity

import "time"

// Product representa un producto del catálogo.
// Sale y Cost se guardan en unidades menores de moneda (centavos): la división
// a unidades mayores ocurre solo en la frontera de salida, nunca en agregaciones.
// El balance de stock no se guarda aquí: se deriva siempre del libro de
// transacciones de inventario.
type Product struct {
	ID            string
	CategoryID    string
	ProviderID    string
	Name          string
	Unit          string // unidad de venta: "kg", "unidad", "caja"...
	AmountPerUnit int    // cantidad contenida por unidad de venta
	MinStockLevel int64
	MaxStockLevel int64
	Sale          int64 // precio de venta por unidad, en centavos
	Cost          int64 // costo por unidad, en centavos
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
