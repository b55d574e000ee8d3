package dto

import "github.com/shopspring/decimal"

// SalesOverviewDTO métricas generales de ventas en un rango de fechas.
// Un rango vacío produce ceros, nunca un error.
type SalesOverviewDTO struct {
	SalesCount         int             `json:"sales_count"`
	TotalItemsSold     int64           `json:"total_items_sold"` // Σ cantidades por línea
	TotalSalesValue    decimal.Decimal `json:"total_sales_value"`
	HighestSale        decimal.Decimal `json:"highest_sale"` // valor de la venta más alta
	LowestSale         decimal.Decimal `json:"lowest_sale"`
	MaxItemsSoldInSale int64           `json:"max_items_sold_in_sale"`
	MinItemsSoldInSale int64           `json:"min_items_sold_in_sale"`
}

// DailySalesDTO totales de ventas de un día calendario.
type DailySalesDTO struct {
	Date      string          `json:"date"` // YYYY-MM-DD
	TotalSale decimal.Decimal `json:"total_sale"`
	Items     int64           `json:"items"`
}

// CategoryDailySalesDTO agregado por categoría y día.
type CategoryDailySalesDTO struct {
	Date         string          `json:"date"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Quantity     int64           `json:"quantity"`
	TotalSale    decimal.Decimal `json:"total_sale"`
}

// SalesDetailDTO detalle de ventas: serie global por día y series por categoría,
// cada serie ordenada por fecha ascendente.
type SalesDetailDTO struct {
	AllSales         []DailySalesDTO         `json:"all_sales"`
	SalesPerCategory []CategoryDailySalesDTO `json:"sales_per_category"`
}
