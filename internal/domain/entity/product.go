package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus estado derivado de un producto. Nunca se edita directamente:
// active/out_of_stock se derivan del stock, in_delivery solo lo ponen y quitan
// las operaciones de entrega.
type ProductStatus string

const (
	StatusActive     ProductStatus = "active"
	StatusOutOfStock ProductStatus = "out_of_stock"
	StatusInDelivery ProductStatus = "in_delivery"
)

// StatusForStock deriva el estado a partir del stock disponible.
// No considera la entrega: ese sub-estado es ortogonal y lo manejan
// exclusivamente las operaciones de entrega del store.
func StatusForStock(stock int) ProductStatus {
	if stock <= 0 {
		return StatusOutOfStock
	}
	return StatusActive
}

// Product representa un artículo vendible del inventario.
// BuyPrice/SellPrice en decimal para que los cálculos de margen no pierdan centavos.
type Product struct {
	ID        int64
	Name      string
	Category  string // puede ser jerárquica: "Hogar > Cocina > Ollas"
	Supplier  string
	BuyPrice  decimal.Decimal
	SellPrice decimal.Decimal
	Stock     int
	Status    ProductStatus
	ImageURL  string
	CreatedAt time.Time
}

// EnEntrega indica si el producto está reservado para entrega externa.
// Mientras está en entrega no se vende desde el pool normal de stock.
func (p Product) EnEntrega() bool {
	return p.Status == StatusInDelivery
}
