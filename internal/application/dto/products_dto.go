package dto

import "github.com/shopspring/decimal"

// ProductSalesDTO cantidad e ingreso de un producto con actividad en el rango.
type ProductSalesDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// ProductsOverviewDTO rankings de productos por cantidad e ingreso (top/least 5).
// Los empates se resuelven por orden de iteración estable: frontera de
// nondeterminismo aceptada, no un defecto.
type ProductsOverviewDTO struct {
	TopSellingProducts     []ProductSalesDTO `json:"top_selling_products"`
	LeastSellingProducts   []ProductSalesDTO `json:"least_selling_products"`
	HighestRevenueProducts []ProductSalesDTO `json:"highest_revenue_products"`
	LowestRevenueProducts  []ProductSalesDTO `json:"lowest_revenue_products"`
}

// ProductDetailDTO métricas de un producto de la categoría consultada.
type ProductDetailDTO struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Category            string          `json:"category"`
	Provider            string          `json:"provider"`
	Sale                decimal.Decimal `json:"sale"` // precio de venta, unidades mayores
	TotalQuantitySold   int64           `json:"total_quantity_sold"`
	TotalSalesRevenue   decimal.Decimal `json:"total_sales_revenue"`
	InitialStockBalance int64           `json:"initial_stock_balance"`
	FinalStockBalance   int64           `json:"final_stock_balance"`
}

// SeriesPointDTO un punto de una serie diaria densa.
type SeriesPointDTO struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Amount decimal.Decimal `json:"amount"`
}

// ProductSeriesDTO las tres series diarias densas de un producto: cantidad
// vendida, ingreso y balance de stock. Cada serie cubre todos los días del
// rango, ambos extremos incluidos, con 0 en los días sin actividad.
type ProductSeriesDTO struct {
	QuantitySold []SeriesPointDTO `json:"quantity_sold"`
	SalesRevenue []SeriesPointDTO `json:"sales_revenue"`
	StockBalance []SeriesPointDTO `json:"stock_balance"`
}

// OverviewDTO combinación de los tres bloques de overview.
type OverviewDTO struct {
	Stock    StockOverviewDTO    `json:"stock"`
	Sales    SalesOverviewDTO    `json:"sales"`
	Products ProductsOverviewDTO `json:"products"`
}
