package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/views"
)

// SalesSummaryResponse agregados de ventas de la ventana pedida.
type SalesSummaryResponse struct {
	Revenue       decimal.Decimal `json:"revenue"`
	Profit        decimal.Decimal `json:"profit"`
	Units         int             `json:"units"`
	Orders        int             `json:"orders"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

// ProfitPointResponse punto de la serie de ganancia.
type ProfitPointResponse struct {
	Label  string          `json:"label"`
	Profit decimal.Decimal `json:"profit"`
}

// TopProductResponse entrada del ranking de productos por ingreso.
type TopProductResponse struct {
	ProductName string          `json:"product_name"`
	Revenue     decimal.Decimal `json:"revenue"`
	Units       int             `json:"units"`
}

// CategoryStatResponse acumulado por categoría.
type CategoryStatResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Stock    int    `json:"stock"`
}

// DashboardResponse el panel completo: agregados de ventas de la ventana,
// valores de inventario y las series para los widgets.
type DashboardResponse struct {
	Days            int                    `json:"days"`
	Summary         SalesSummaryResponse   `json:"summary"`
	StockValue      decimal.Decimal        `json:"stock_value"`
	PotentialProfit decimal.Decimal        `json:"potential_profit"`
	ProfitSeries    []ProfitPointResponse  `json:"profit_series"`
	TopProducts     []TopProductResponse   `json:"top_products"`
	Categories      []CategoryStatResponse `json:"categories"`
}

// NewSalesSummaryResponse convierte el agregado de vistas.
func NewSalesSummaryResponse(s views.SalesSummary) SalesSummaryResponse {
	return SalesSummaryResponse{
		Revenue:       s.Revenue,
		Profit:        s.Profit,
		Units:         s.Units,
		Orders:        s.Orders,
		AvgOrderValue: s.AvgOrderValue,
	}
}

// NewProfitSeriesResponse convierte la serie de ganancia.
func NewProfitSeriesResponse(points []views.ProfitPoint) []ProfitPointResponse {
	out := make([]ProfitPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, ProfitPointResponse{Label: p.Label, Profit: p.Profit})
	}
	return out
}

// NewTopProductsResponse convierte el ranking por ingreso.
func NewTopProductsResponse(ranking []views.ProductRevenue) []TopProductResponse {
	out := make([]TopProductResponse, 0, len(ranking))
	for _, r := range ranking {
		out = append(out, TopProductResponse{ProductName: r.ProductName, Revenue: r.Revenue, Units: r.Units})
	}
	return out
}

// NewCategoryStatsResponse convierte los acumulados por categoría.
func NewCategoryStatsResponse(stats []views.CategoryStat) []CategoryStatResponse {
	out := make([]CategoryStatResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, CategoryStatResponse{Category: s.Category, Count: s.Count, Stock: s.Stock})
	}
	return out
}
