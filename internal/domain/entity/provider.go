package entity

import "time"

// Provider representa un proveedor de reabastecimiento.
// LeadDays es el tiempo entre colocar y recibir un pedido; entra directo en la
// fórmula de reorden.
type Provider struct {
	ID        string
	Name      string
	LeadDays  int // >= 0
	CreatedAt time.Time
	UpdatedAt time.Time
}
