package entity

import "time"

// OrderItem es una línea de pedido de reabastecimiento.
type OrderItem struct {
	ProductID string
	Quantity  int64
	UnitCost  int64 // centavos
	TotalCost int64
}

// Order es el simétrico de Sale: un pedido a proveedor que aumenta stock.
// Cada pedido confirmado produce una transacción de inventario positiva por línea.
type Order struct {
	ID         string
	ProviderID string
	Date       time.Time
	Cost       int64 // costo total en centavos = Σ Items[i].TotalCost
	Items      []OrderItem
	CreatedAt  time.Time
}
