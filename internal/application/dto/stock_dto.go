package dto

import "github.com/shopspring/decimal"

// ProductRefDTO referencia mínima a un producto en listados.
type ProductRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StockOverviewDTO métricas generales de stock sobre todo el catálogo.
type StockOverviewDTO struct {
	InventoryValue          decimal.Decimal `json:"inventory_value"` // Σ balance × costo, en unidades mayores
	TotalItemsInStock       int64           `json:"total_items_in_stock"`
	ProductsInStockCount    int             `json:"products_in_stock_count"`     // balance > 0
	ProductsOutOfStockCount int             `json:"products_out_of_stock_count"` // balance <= 0
	LowStockProducts        []ProductRefDTO `json:"low_stock_products"`          // balance < min_stock_level
	ExcessiveStockProducts  []ProductRefDTO `json:"excessive_stock_products"`    // balance > max_stock_level
	ProductCount            int             `json:"product_count"`
}

// Clasificación de stock de un producto frente a sus niveles min/max.
// La igualdad en cualquiera de los dos bordes es within_range.
const (
	StockStatusUnderstocked = "understocked"
	StockStatusOverstocked  = "overstocked"
	StockStatusWithinRange  = "within_range"
)

// ProductStockDetailDTO detalle de stock de un producto dentro de su categoría.
type ProductStockDetailDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Min     int64  `json:"min"`
	Max     int64  `json:"max"`
	Current int64  `json:"current"`
	Range   int64  `json:"range"` // max - min
	Status  string `json:"status"`
}

// CategoryRefDTO referencia mínima a una categoría.
type CategoryRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StockDetailDTO detalle de stock por categoría.
type StockDetailDTO struct {
	Category CategoryRefDTO          `json:"category"`
	Products []ProductStockDetailDTO `json:"products"`
}
