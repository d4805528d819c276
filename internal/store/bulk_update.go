package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/gateway"
	"github.com/jhoicas/negocio-api/internal/mapper"
)

// NumericMode modo de actualización de un campo numérico en edición masiva.
type NumericMode string

const (
	ModeSet      NumericMode = "set"
	ModeIncrease NumericMode = "increase"
	ModeDecrease NumericMode = "decrease"
)

// NumericUpdate unión etiquetada: Set(valor) | Increase(delta) | Decrease(delta).
// Se parsea y valida una sola vez en la frontera, antes de mutar nada.
type NumericUpdate struct {
	Mode  NumericMode
	Value decimal.Decimal
}

func (u NumericUpdate) validate(field string) error {
	switch u.Mode {
	case ModeSet, ModeIncrease, ModeDecrease:
	default:
		return validationErr(fmt.Sprintf("%s: modo desconocido %q", field, u.Mode))
	}
	if u.Value.IsNegative() {
		return validationErr(field + ": el valor debe ser no negativo")
	}
	return nil
}

// apply devuelve el valor resultante, con piso en 0 para decrease.
func (u NumericUpdate) apply(current decimal.Decimal) decimal.Decimal {
	switch u.Mode {
	case ModeIncrease:
		return current.Add(u.Value)
	case ModeDecrease:
		next := current.Sub(u.Value)
		if next.IsNegative() {
			return decimal.Zero
		}
		return next
	default:
		return u.Value
	}
}

// BulkUpdate payload disperso de edición masiva: actualizaciones numéricas por
// modo para precios y stock, reemplazo plano para categoría y proveedor.
type BulkUpdate struct {
	BuyPrice  *NumericUpdate
	SellPrice *NumericUpdate
	Stock     *NumericUpdate
	Category  *string
	Supplier  *string
}

// Validate valida el payload completo antes de tocar cualquier producto.
func (b BulkUpdate) Validate() error {
	if b.BuyPrice == nil && b.SellPrice == nil && b.Stock == nil && b.Category == nil && b.Supplier == nil {
		return validationErr("edición masiva sin campos")
	}
	if b.BuyPrice != nil {
		if err := b.BuyPrice.validate("precio de compra"); err != nil {
			return err
		}
	}
	if b.SellPrice != nil {
		if err := b.SellPrice.validate("precio de venta"); err != nil {
			return err
		}
	}
	if b.Stock != nil {
		if err := b.Stock.validate("stock"); err != nil {
			return err
		}
		if !b.Stock.Value.IsInteger() {
			return validationErr("stock: el valor debe ser entero")
		}
	}
	if b.Category != nil && *b.Category == "" {
		return validationErr("categoría no puede quedar vacía")
	}
	if b.Supplier != nil && *b.Supplier == "" {
		return validationErr("proveedor no puede quedar vacío")
	}
	return nil
}

// UpdateMultipleProducts aplica la edición masiva a cada producto indicado.
// El status se recalcula por producto según el stock resultante (preservando
// el sub-estado de entrega). Una entrada `updated` por producto afectado, con
// marcador de actualización masiva. Devuelve cuántos se actualizaron.
func (s *Store) UpdateMultipleProducts(ctx context.Context, ids []int64, b BulkUpdate) (int, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	var firstErr error
	for _, id := range ids {
		old, ok := s.findProduct(id)
		if !ok {
			continue
		}

		next := old
		if b.BuyPrice != nil {
			next.BuyPrice = b.BuyPrice.apply(old.BuyPrice)
		}
		if b.SellPrice != nil {
			next.SellPrice = b.SellPrice.apply(old.SellPrice)
		}
		if b.Stock != nil {
			next.Stock = int(b.Stock.apply(decimal.NewFromInt(int64(old.Stock))).IntPart())
		}
		if b.Category != nil {
			next.Category = *b.Category
		}
		if b.Supplier != nil {
			next.Supplier = *b.Supplier
		}
		if !old.EnEntrega() {
			next.Status = entity.StatusForStock(next.Stock)
		}

		if _, err := s.remote.Update(ctx, gateway.TableProducts, id, mapper.FromProduct(next)); err != nil {
			firstErr = remoteErr(fmt.Sprintf("actualizar producto %d", id), err)
			break
		}
		details := buildUpdateDetails(old, next)
		if details == "" {
			details = "Sin cambios"
		}
		if err := s.appendLog(ctx, id, next.Name, entity.ActionUpdated, "Actualización masiva: "+details); err != nil {
			firstErr = err
			break
		}
		updated++
	}

	if err := s.reloadLocked(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	s.log.Info().Int("updated", updated).Int("requested", len(ids)).Msg("edición masiva")
	return updated, firstErr
}
