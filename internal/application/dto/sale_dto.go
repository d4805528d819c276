package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// SaleRequest cuerpo para registrar una venta.
type SaleRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// SaleResponse venta con sus totales congelados al momento de la operación.
type SaleResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	SellPrice   decimal.Decimal `json:"sell_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	TotalMargin decimal.Decimal `json:"total_margin"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewSaleResponse arma la respuesta de una venta.
func NewSaleResponse(v entity.Sale) SaleResponse {
	return SaleResponse{
		ID:          v.ID,
		ProductID:   v.ProductID,
		ProductName: v.ProductName,
		Quantity:    v.Quantity,
		SellPrice:   v.SellPrice,
		TotalPrice:  v.TotalPrice,
		TotalMargin: v.TotalMargin,
		CreatedAt:   v.CreatedAt,
	}
}

// NewSaleListResponse arma la respuesta de un listado de ventas.
func NewSaleListResponse(sales []entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for _, v := range sales {
		out = append(out, NewSaleResponse(v))
	}
	return out
}

// ActivityResponse entrada de la bitácora de actividad.
type ActivityResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id,omitempty"`
	ProductName string    `json:"product_name"`
	Action      string    `json:"action"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewActivityListResponse arma la respuesta de la bitácora.
func NewActivityListResponse(entries []entity.ActivityLog) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ActivityResponse{
			ID:          e.ID,
			ProductID:   e.ProductID,
			ProductName: e.ProductName,
			Action:      string(e.Action),
			Details:     e.Details,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}
