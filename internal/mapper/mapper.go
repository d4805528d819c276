// Package mapper traduce entre los registros crudos del backend (snake_case)
// y las entidades de dominio. Es el ÚNICO punto del sistema donde existe esa
// traducción: ningún otro componente puede asumir nombres de campo del backend.
// Funciones puras y totales: valores ausentes o de tipo inesperado se coercen
// al cero del dominio, nunca hay I/O ni pánico.
package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/gateway"
)

// ToProduct convierte un registro crudo de products en la entidad Product.
func ToProduct(r gateway.Record) entity.Product {
	return entity.Product{
		ID:        asInt64(r["id"]),
		Name:      asString(r["name"]),
		Category:  asString(r["category"]),
		Supplier:  asString(r["supplier"]),
		BuyPrice:  asDecimal(r["buy_price"]),
		SellPrice: asDecimal(r["sell_price"]),
		Stock:     int(asInt64(r["stock"])),
		Status:    entity.ProductStatus(asString(r["status"])),
		ImageURL:  asString(r["image_url"]),
		CreatedAt: asTime(r["created_at"]),
	}
}

// ToSale convierte un registro crudo de sales en la entidad Sale.
func ToSale(r gateway.Record) entity.Sale {
	return entity.Sale{
		ID:          asInt64(r["id"]),
		ProductID:   asInt64(r["product_id"]),
		ProductName: asString(r["product_name"]),
		Quantity:    int(asInt64(r["quantity"])),
		SellPrice:   asDecimal(r["sell_price"]),
		TotalPrice:  asDecimal(r["total_price"]),
		TotalMargin: asDecimal(r["total_margin"]),
		CreatedAt:   asTime(r["created_at"]),
	}
}

// ToActivityLog convierte un registro crudo de activity_log en la entidad.
func ToActivityLog(r gateway.Record) entity.ActivityLog {
	return entity.ActivityLog{
		ID:          asInt64(r["id"]),
		ProductID:   asInt64(r["product_id"]),
		ProductName: asString(r["product_name"]),
		Action:      entity.LogAction(asString(r["action"])),
		Details:     asString(r["details"]),
		CreatedAt:   asTime(r["created_at"]),
	}
}

// FromProduct arma los campos de escritura de un producto (sin id ni created_at,
// que asigna el backend).
func FromProduct(p entity.Product) gateway.Record {
	return gateway.Record{
		"name":       p.Name,
		"category":   p.Category,
		"supplier":   p.Supplier,
		"buy_price":  p.BuyPrice,
		"sell_price": p.SellPrice,
		"stock":      p.Stock,
		"status":     string(p.Status),
		"image_url":  p.ImageURL,
	}
}

// FromSale arma los campos de escritura de una venta.
func FromSale(s entity.Sale) gateway.Record {
	r := gateway.Record{
		"product_name": s.ProductName,
		"quantity":     s.Quantity,
		"sell_price":   s.SellPrice,
		"total_price":  s.TotalPrice,
		"total_margin": s.TotalMargin,
	}
	if s.ProductID != 0 {
		r["product_id"] = s.ProductID
	}
	return r
}

// FromActivityLog arma los campos de escritura de una entrada de bitácora.
func FromActivityLog(l entity.ActivityLog) gateway.Record {
	r := gateway.Record{
		"product_name": l.ProductName,
		"action":       string(l.Action),
		"details":      l.Details,
	}
	if l.ProductID != 0 {
		r["product_id"] = l.ProductID
	}
	return r
}

// StockStatusPatch arma el patch de stock + status derivado (la pareja siempre
// viaja junta: el backend nunca debe ver un stock nuevo con un status viejo).
func StockStatusPatch(stock int, status entity.ProductStatus) gateway.Record {
	return gateway.Record{
		"stock":  stock,
		"status": string(status),
	}
}

// StatusPatch arma el patch que solo cambia el status (transiciones de entrega,
// donde el stock no se mueve).
func StatusPatch(status entity.ProductStatus) gateway.Record {
	return gateway.Record{"status": string(status)}
}

// ── Coerciones ────────────────────────────────────────────────────────────────

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	case decimal.Decimal:
		return n.IntPart()
	default:
		return 0
	}
}

func asDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(n)
	case int64:
		return decimal.NewFromInt(n)
	case int:
		return decimal.NewFromInt(int64(n))
	default:
		return decimal.Zero
	}
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts
		}
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}
