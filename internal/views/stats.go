// Package views contiene las vistas derivadas: cálculos puros sobre el estado
// del store (agregados, series, filtros). Ninguna función guarda estado y el
// "ahora" siempre llega como parámetro, así dos llamadas con los mismos
// argumentos producen exactamente el mismo resultado.
package views

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

var cien = decimal.NewFromInt(100)

// MarginPercent margen porcentual del producto: (venta - compra) / venta * 100.
// 0 si el precio de venta no es positivo (evita división por cero).
func MarginPercent(p entity.Product) decimal.Decimal {
	if p.SellPrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return p.SellPrice.Sub(p.BuyPrice).Div(p.SellPrice).Mul(cien).Round(2)
}

// StockValue valor del inventario a precio de compra: Σ buyPrice * stock.
func StockValue(products []entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.BuyPrice.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return total
}

// PotentialProfit ganancia potencial del inventario: Σ (sellPrice - buyPrice) * stock.
func PotentialProfit(products []entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.SellPrice.Sub(p.BuyPrice).Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return total
}

// SalesSummary agregados de ventas sobre una ventana de tiempo.
type SalesSummary struct {
	Revenue       decimal.Decimal // Σ totalPrice
	Profit        decimal.Decimal // Σ totalMargin
	Units         int             // Σ quantity
	Orders        int             // número de ventas
	AvgOrderValue decimal.Decimal // Revenue / Orders
}

// startOfDay trunca al inicio del día calendario en la zona de t.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FilterSalesByDays devuelve las ventas dentro de los últimos days días
// calendario (days <= 0 = sin filtro). El corte es inicio de día, no una
// ventana rodante de 24h*N: "últimos 7 días" cubre hoy y los 6 días
// calendario anteriores.
func FilterSalesByDays(sales []entity.Sale, days int, now time.Time) []entity.Sale {
	if days <= 0 {
		out := make([]entity.Sale, len(sales))
		copy(out, sales)
		return out
	}
	cutoff := startOfDay(now).AddDate(0, 0, -(days - 1))
	out := make([]entity.Sale, 0, len(sales))
	for _, v := range sales {
		if !v.CreatedAt.Before(cutoff) {
			out = append(out, v)
		}
	}
	return out
}

// SummarizeSales calcula los agregados de la ventana indicada.
func SummarizeSales(sales []entity.Sale, days int, now time.Time) SalesSummary {
	var sum SalesSummary
	sum.Revenue = decimal.Zero
	sum.Profit = decimal.Zero
	for _, v := range FilterSalesByDays(sales, days, now) {
		sum.Revenue = sum.Revenue.Add(v.TotalPrice)
		sum.Profit = sum.Profit.Add(v.TotalMargin)
		sum.Units += v.Quantity
		sum.Orders++
	}
	if sum.Orders > 0 {
		sum.AvgOrderValue = sum.Revenue.Div(decimal.NewFromInt(int64(sum.Orders))).Round(2)
	} else {
		sum.AvgOrderValue = decimal.Zero
	}
	return sum
}
