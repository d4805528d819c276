package views_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/views"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func producto(name string, buy, sell string, stock int) entity.Product {
	return entity.Product{
		Name:      name,
		Category:  "Hogar > Cocina",
		Supplier:  "Andina",
		BuyPrice:  dec(buy),
		SellPrice: dec(sell),
		Stock:     stock,
		Status:    entity.StatusForStock(stock),
	}
}

func venta(name string, total, margin string, qty int, createdAt time.Time) entity.Sale {
	return entity.Sale{
		ProductName: name,
		Quantity:    qty,
		TotalPrice:  dec(total),
		TotalMargin: dec(margin),
		CreatedAt:   createdAt,
	}
}

func TestMarginPercent(t *testing.T) {
	p := producto("A", "60", "100", 1)
	assert.True(t, views.MarginPercent(p).Equal(dec("40")), "(100-60)/100 = 40 por ciento")

	gratis := producto("B", "10", "0", 1)
	assert.True(t, views.MarginPercent(gratis).IsZero(), "precio de venta cero no divide por cero")
}

func TestStockValue_Y_PotentialProfit(t *testing.T) {
	// 10 unidades compradas a 5, vendidas a 10: valor 50, ganancia potencial 50.
	products := []entity.Product{producto("A", "5", "10", 10)}

	assert.True(t, views.StockValue(products).Equal(dec("50")))
	assert.True(t, views.PotentialProfit(products).Equal(dec("50")))
}

func TestFilterSalesByDays_VentanaCalendario(t *testing.T) {
	// "Ahora" fijo: las vistas nunca leen el reloj.
	now := time.Date(2026, 2, 14, 15, 30, 0, 0, time.UTC)

	dentro := venta("A", "100", "30", 1, time.Date(2026, 2, 8, 0, 0, 1, 0, time.UTC))
	borde := venta("B", "50", "10", 1, time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC))
	fuera := venta("C", "70", "20", 1, time.Date(2026, 2, 7, 23, 59, 59, 0, time.UTC))

	out := views.FilterSalesByDays([]entity.Sale{dentro, borde, fuera}, 7, now)
	require.Len(t, out, 2, "7 días = hoy + los 6 días calendario anteriores")
	assert.Equal(t, "A", out[0].ProductName)
	assert.Equal(t, "B", out[1].ProductName, "el inicio exacto del día de corte queda dentro")
}

func TestFilterSalesByDays_SinFiltro(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	sales := []entity.Sale{
		venta("A", "100", "30", 1, now.AddDate(-1, 0, 0)),
		venta("B", "50", "10", 1, now),
	}
	assert.Len(t, views.FilterSalesByDays(sales, 0, now), 2, "days <= 0 devuelve todo el historial")
	assert.Len(t, views.FilterSalesByDays(sales, -5, now), 2)
}

func TestSummarizeSales(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	sales := []entity.Sale{
		venta("A", "100", "30", 2, now.AddDate(0, 0, -1)),
		venta("B", "50", "20", 1, now.AddDate(0, 0, -2)),
		venta("C", "999", "500", 9, now.AddDate(0, 0, -40)), // fuera de la ventana
	}

	sum := views.SummarizeSales(sales, 30, now)
	assert.True(t, sum.Revenue.Equal(dec("150")), "ingreso de la ventana, obtuvo %s", sum.Revenue)
	assert.True(t, sum.Profit.Equal(dec("50")))
	assert.Equal(t, 3, sum.Units)
	assert.Equal(t, 2, sum.Orders)
	assert.True(t, sum.AvgOrderValue.Equal(dec("75")), "150 / 2 órdenes")
}

func TestSummarizeSales_SinVentas(t *testing.T) {
	sum := views.SummarizeSales(nil, 30, time.Now())
	assert.True(t, sum.Revenue.IsZero())
	assert.True(t, sum.AvgOrderValue.IsZero(), "sin órdenes el promedio es cero, no NaN")
	assert.Zero(t, sum.Orders)
}
