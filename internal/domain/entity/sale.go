package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale registro histórico e inmutable de una venta completada.
//
// TotalPrice y TotalMargin se calculan UNA vez al crear la venta, con los
// precios vigentes del producto en ese momento, y quedan congelados: los
// reportes históricos no deben cambiar si el producto cambia de precio después.
// ProductName es un snapshot denormalizado que sobrevive al borrado del producto.
type Sale struct {
	ID          int64
	ProductID   int64 // 0 si el producto referenciado ya no existe
	ProductName string
	Quantity    int
	SellPrice   decimal.Decimal // precio unitario al momento de la venta
	TotalPrice  decimal.Decimal // SellPrice * Quantity, congelado
	TotalMargin decimal.Decimal // (SellPrice - BuyPrice) * Quantity, congelado
	CreatedAt   time.Time
}

// NewSale congela los totales de una venta de qty unidades del producto p.
func NewSale(p Product, qty int, now time.Time) Sale {
	q := decimal.NewFromInt(int64(qty))
	return Sale{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    qty,
		SellPrice:   p.SellPrice,
		TotalPrice:  p.SellPrice.Mul(q),
		TotalMargin: p.SellPrice.Sub(p.BuyPrice).Mul(q),
		CreatedAt:   now,
	}
}
