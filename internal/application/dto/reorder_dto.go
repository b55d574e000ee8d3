package dto

import "github.com/shopspring/decimal"

// ReorderSuggestionDTO recomendación de reorden de un producto.
// Los montos se convierten a unidades mayores solo en esta frontera final.
type ReorderSuggestionDTO struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Unit            string          `json:"unit"`
	AmountPerUnit   int             `json:"amount_per_unit"`
	StockBalance    int64           `json:"stock_balance"`
	PredictedDemand int64           `json:"predicted_demand"`
	SafetyStock     int64           `json:"safety_stock"`
	ReorderAmount   int64           `json:"reorder_amount"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
	TotalCost       decimal.Decimal `json:"total_cost"` // costo × cantidad a reordenar
}
