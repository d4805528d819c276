package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/store"
	"github.com/jhoicas/negocio-api/internal/views"
)

// ProductRequest cuerpo para crear o editar un producto.
type ProductRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Supplier  string          `json:"supplier"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Stock     int             `json:"stock"`
	ImageURL  string          `json:"image_url"`
}

// Input convierte el request al tipo de entrada del store.
func (r ProductRequest) Input() store.ProductInput {
	return store.ProductInput{
		Name:      r.Name,
		Category:  r.Category,
		Supplier:  r.Supplier,
		BuyPrice:  r.BuyPrice,
		SellPrice: r.SellPrice,
		Stock:     r.Stock,
		ImageURL:  r.ImageURL,
	}
}

// ImportProductsRequest lote de productos a importar.
type ImportProductsRequest struct {
	Products []ProductRequest `json:"products"`
}

// IDsRequest lista de ids para operaciones masivas.
type IDsRequest struct {
	IDs []int64 `json:"ids"`
}

// NumericUpdateRequest actualización numérica por modo (set/increase/decrease).
type NumericUpdateRequest struct {
	Mode  string          `json:"mode"`
	Value decimal.Decimal `json:"value"`
}

func (r *NumericUpdateRequest) toStore() *store.NumericUpdate {
	if r == nil {
		return nil
	}
	return &store.NumericUpdate{Mode: store.NumericMode(r.Mode), Value: r.Value}
}

// BulkUpdateRequest edición masiva: solo los campos presentes se aplican.
type BulkUpdateRequest struct {
	IDs       []int64               `json:"ids"`
	BuyPrice  *NumericUpdateRequest `json:"buy_price"`
	SellPrice *NumericUpdateRequest `json:"sell_price"`
	Stock     *NumericUpdateRequest `json:"stock"`
	Category  *string               `json:"category"`
	Supplier  *string               `json:"supplier"`
}

// Update convierte el request al payload del store.
func (r BulkUpdateRequest) Update() store.BulkUpdate {
	return store.BulkUpdate{
		BuyPrice:  r.BuyPrice.toStore(),
		SellPrice: r.SellPrice.toStore(),
		Stock:     r.Stock.toStore(),
		Category:  r.Category,
		Supplier:  r.Supplier,
	}
}

// ProductResponse producto con su margen porcentual derivado.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Supplier      string          `json:"supplier"`
	BuyPrice      decimal.Decimal `json:"buy_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	Stock         int             `json:"stock"`
	Status        string          `json:"status"`
	ImageURL      string          `json:"image_url"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewProductResponse arma la respuesta de un producto.
func NewProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Supplier:      p.Supplier,
		BuyPrice:      p.BuyPrice,
		SellPrice:     p.SellPrice,
		Stock:         p.Stock,
		Status:        string(p.Status),
		ImageURL:      p.ImageURL,
		MarginPercent: views.MarginPercent(p),
		CreatedAt:     p.CreatedAt,
	}
}

// NewProductListResponse arma la respuesta de un listado.
func NewProductListResponse(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}
