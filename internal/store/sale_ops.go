package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/gateway"
	"github.com/jhoicas/negocio-api/internal/mapper"
)

// AddSale registra una venta de qty unidades del producto indicado.
//
// Dos escrituras remotas sin transacción: (1) decrementar el stock del
// producto, (2) insertar el registro de venta. Si (2) falla, se compensa
// restaurando el stock; si la compensación también falla, el estado local y el
// remoto divergieron y se devuelve una CompensationError tras forzar recarga.
//
// TotalPrice/TotalMargin se congelan con los precios vigentes del producto en
// este momento; cambios de precio posteriores no alteran ventas históricas.
func (s *Store) AddSale(ctx context.Context, productID int64, qty int) (entity.Sale, error) {
	if qty <= 0 {
		return entity.Sale{}, validationErr("la cantidad debe ser mayor que cero")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findProduct(productID)
	if !ok {
		// El producto no existe en el estado local: para el vendedor es lo
		// mismo que no tener unidades disponibles.
		return entity.Sale{}, fmt.Errorf("%w: producto %d no disponible", domain.ErrInsufficientStock, productID)
	}
	if p.EnEntrega() {
		return entity.Sale{}, fmt.Errorf("%w: el producto está reservado en entrega", domain.ErrConflict)
	}
	if qty > p.Stock {
		return entity.Sale{}, fmt.Errorf("%w: stock %d, solicitado %d", domain.ErrInsufficientStock, p.Stock, qty)
	}

	opID := uuid.New().String()
	newStock := p.Stock - qty

	// Paso 1: decrementar stock (status derivado del stock resultante).
	patch := mapper.StockStatusPatch(newStock, entity.StatusForStock(newStock))
	if _, err := s.remote.Update(ctx, gateway.TableProducts, productID, patch); err != nil {
		return entity.Sale{}, remoteErr("descontar stock", err)
	}

	// Paso 2: insertar la venta con los totales congelados.
	sale := entity.NewSale(p, qty, s.now())
	rec, err := s.remote.Create(ctx, gateway.TableSales, mapper.FromSale(sale))
	if err != nil {
		return entity.Sale{}, s.compensateStock(ctx, "add_sale", opID, p, err)
	}
	created := mapper.ToSale(rec)

	details := fmt.Sprintf("Venta: %d x %s (total %s)", qty, p.Name, created.TotalPrice)
	if logErr := s.appendLog(ctx, productID, p.Name, entity.ActionSold, details); logErr != nil {
		return entity.Sale{}, logErr
	}
	if err := s.reloadLocked(ctx); err != nil {
		return entity.Sale{}, err
	}
	s.log.Info().Str("op_id", opID).Int64("product_id", productID).Int("qty", qty).Msg("venta registrada")
	return created, nil
}

// CancelSale revierte una venta: restaura el stock del producto y elimina el
// registro de venta. Si el producto ya fue eliminado, la venta igual se borra
// pero el stock no puede restaurarse (se deja constancia en la bitácora).
// El status resultante se deriva del stock restaurado.
func (s *Store) CancelSale(ctx context.Context, saleID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, ok := s.findSale(saleID)
	if !ok {
		return fmt.Errorf("%w: venta %d", domain.ErrNotFound, saleID)
	}

	p, productExists := s.findProduct(sale.ProductID)
	if !productExists {
		// Producto eliminado: solo se borra la venta.
		if err := s.remote.Delete(ctx, gateway.TableSales, saleID); err != nil {
			return remoteErr("eliminar venta", err)
		}
		details := fmt.Sprintf("Venta cancelada: %d x %s (stock no restaurado: producto eliminado)", sale.Quantity, sale.ProductName)
		if err := s.appendLog(ctx, 0, sale.ProductName, entity.ActionSaleCancelled, details); err != nil {
			return err
		}
		return s.reloadLocked(ctx)
	}

	opID := uuid.New().String()
	restored := p.Stock + sale.Quantity

	// Paso 1: restaurar stock. El status sale del stock restaurado, salvo que
	// el producto esté en entrega (ese sub-estado no se toca aquí).
	status := entity.StatusForStock(restored)
	if p.EnEntrega() {
		status = entity.StatusInDelivery
	}
	if _, err := s.remote.Update(ctx, gateway.TableProducts, p.ID, mapper.StockStatusPatch(restored, status)); err != nil {
		return remoteErr("restaurar stock", err)
	}

	// Paso 2: eliminar la venta; si falla, revertir la restauración.
	if err := s.remote.Delete(ctx, gateway.TableSales, saleID); err != nil {
		return s.compensateStock(ctx, "cancel_sale", opID, p, err)
	}

	details := fmt.Sprintf("Venta cancelada: %d x %s (stock restaurado a %d)", sale.Quantity, sale.ProductName, restored)
	if err := s.appendLog(ctx, p.ID, p.Name, entity.ActionSaleCancelled, details); err != nil {
		return err
	}
	if err := s.reloadLocked(ctx); err != nil {
		return err
	}
	s.log.Info().Str("op_id", opID).Int64("sale_id", saleID).Msg("venta cancelada")
	return nil
}

// compensateStock revierte el stock/status del producto a los valores previos
// a la operación. Si el revert también falla, devuelve CompensationError y
// fuerza una recarga de mejor esfuerzo para reducir la deriva.
func (s *Store) compensateStock(ctx context.Context, op, opID string, prev entity.Product, cause error) error {
	patch := mapper.StockStatusPatch(prev.Stock, prev.Status)
	if _, revertErr := s.remote.Update(ctx, gateway.TableProducts, prev.ID, patch); revertErr != nil {
		s.log.Error().
			Str("op", op).
			Str("op_id", opID).
			Int64("product_id", prev.ID).
			AnErr("cause", cause).
			AnErr("revert", revertErr).
			Msg("compensación fallida: estado local y remoto pueden diverger")
		if reloadErr := s.reloadLocked(ctx); reloadErr != nil {
			s.log.Error().Err(reloadErr).Msg("recarga tras compensación fallida")
		}
		return &domain.CompensationError{Op: op, OpID: opID, Cause: cause, RevertErr: revertErr}
	}
	return remoteErr(op, cause)
}
