package entity

import "time"

// OriginKind identifica el tipo de documento que generó una transacción de inventario.
type OriginKind string

// Orígenes posibles de una transacción del libro.
const (
	OriginSale  OriginKind = "sale"  // venta: cantidad negativa
	OriginOrder OriginKind = "order" // pedido a proveedor: cantidad positiva
)

// TransactionOrigin es la variante etiquetada que reemplaza la referencia
// polimórfica parent_type/parent_id: o una venta o un pedido, nunca ambos.
type TransactionOrigin struct {
	Kind OriginKind
	ID   string
}

// InventoryTransaction es una entrada del libro de inventario de un producto.
// Quantity es un entero con signo (positivo = entra stock, negativo = sale) y
// StockBalance es la foto del balance resultante en ese instante.
//
// Invariante: ordenadas por fecha, las transacciones de un producto forman un
// balance corrido consistente; la última transacción con fecha <= t define el
// balance del producto en t.
type InventoryTransaction struct {
	ID           string
	ProductID    string
	Date         time.Time
	Quantity     int64
	StockBalance int64
	Origin       TransactionOrigin
	CreatedAt    time.Time
}
