package dto

// SaleLineRequest una línea de venta entrante.
type SaleLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateSaleRequest cuerpo de POST /api/registry/sales.
type CreateSaleRequest struct {
	Date  string            `json:"date"` // opcional, YYYY-MM-DD o YYYY-MM-DD HH:MM:SS; vacío = ahora
	Items []SaleLineRequest `json:"items"`
}

// OrderLineRequest una línea de pedido entrante.
type OrderLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateOrderRequest cuerpo de POST /api/registry/orders.
type CreateOrderRequest struct {
	ProviderID string             `json:"provider_id"`
	Date       string             `json:"date"` // opcional; vacío = ahora
	Items      []OrderLineRequest `json:"items"`
}
