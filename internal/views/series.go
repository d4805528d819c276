package views

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// TopProductos número de productos en el widget de mejores vendidos.
const TopProductos = 5

// ProfitPoint punto de la serie de ganancia en el tiempo.
type ProfitPoint struct {
	Label  string          // "2026-02-14" por día, "2026-02" por mes
	Profit decimal.Decimal // Σ totalMargin del bucket
}

// ProfitSeries agrupa la ganancia de las ventas de la ventana por día (rangos
// cortos) o por mes (rangos de un año o más, y sin filtro), ordenada
// cronológicamente ascendente.
func ProfitSeries(sales []entity.Sale, days int, now time.Time) []ProfitPoint {
	layout := "2006-01-02"
	if days <= 0 || days >= 365 {
		layout = "2006-01"
	}

	byBucket := make(map[string]decimal.Decimal)
	for _, v := range FilterSalesByDays(sales, days, now) {
		key := v.CreatedAt.Format(layout)
		byBucket[key] = byBucket[key].Add(v.TotalMargin)
	}

	keys := make([]string, 0, len(byBucket))
	for k := range byBucket {
		keys = append(keys, k)
	}
	sort.Strings(keys) // los layouts son lexicográficamente cronológicos

	out := make([]ProfitPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, ProfitPoint{Label: k, Profit: byBucket[k]})
	}
	return out
}

// ProductRevenue ingreso acumulado de un producto (agrupado por nombre
// denormalizado, así el ranking incluye productos ya eliminados).
type ProductRevenue struct {
	ProductName string
	Revenue     decimal.Decimal
	Units       int
}

// TopProductsByRevenue agrupa las ventas por nombre de producto, suma
// totalPrice y devuelve los n mayores. Empates conservan el orden de primera
// aparición (sort estable).
func TopProductsByRevenue(sales []entity.Sale, n int) []ProductRevenue {
	index := make(map[string]int)
	var ranking []ProductRevenue
	for _, v := range sales {
		i, ok := index[v.ProductName]
		if !ok {
			i = len(ranking)
			index[v.ProductName] = i
			ranking = append(ranking, ProductRevenue{ProductName: v.ProductName, Revenue: decimal.Zero})
		}
		ranking[i].Revenue = ranking[i].Revenue.Add(v.TotalPrice)
		ranking[i].Units += v.Quantity
	}

	sort.SliceStable(ranking, func(a, b int) bool {
		return ranking[a].Revenue.GreaterThan(ranking[b].Revenue)
	})
	if n > 0 && len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// CategoryLeaf devuelve el último segmento de una categoría jerárquica
// ("Hogar > Cocina > Ollas" -> "Ollas").
func CategoryLeaf(category string) string {
	parts := strings.Split(category, ">")
	for i := len(parts) - 1; i >= 0; i-- {
		if leaf := strings.TrimSpace(parts[i]); leaf != "" {
			return leaf
		}
	}
	return ""
}

// CategoryStat acumulado por categoría (hoja de la jerarquía).
type CategoryStat struct {
	Category string
	Count    int // productos en la categoría
	Stock    int // unidades en stock
}

// ByCategory agrupa productos por la hoja de su categoría, acumulando conteo y
// stock. Orden: stock descendente, empates por nombre ascendente.
func ByCategory(products []entity.Product) []CategoryStat {
	index := make(map[string]int)
	var out []CategoryStat
	for _, p := range products {
		leaf := CategoryLeaf(p.Category)
		i, ok := index[leaf]
		if !ok {
			i = len(out)
			index[leaf] = i
			out = append(out, CategoryStat{Category: leaf})
		}
		out[i].Count++
		out[i].Stock += p.Stock
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Stock != out[b].Stock {
			return out[a].Stock > out[b].Stock
		}
		return out[a].Category < out[b].Category
	})
	return out
}
