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

// La entrega es un sub-estado del producto (status = in_delivery): reserva todo
// su stock para un cumplimiento externo. Mientras dura, el producto no se vende
// del pool normal. Solo estas tres operaciones entran y salen del sub-estado.

// SetProductToDelivery reserva el producto para entrega.
func (s *Store) SetProductToDelivery(ctx context.Context, id int64) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findProduct(id)
	if !ok {
		return entity.Product{}, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	if p.EnEntrega() {
		return entity.Product{}, fmt.Errorf("%w: el producto ya está en entrega", domain.ErrConflict)
	}
	if p.Stock <= 0 {
		return entity.Product{}, fmt.Errorf("%w: no hay unidades para reservar", domain.ErrInsufficientStock)
	}

	if _, err := s.remote.Update(ctx, gateway.TableProducts, id, mapper.StatusPatch(entity.StatusInDelivery)); err != nil {
		return entity.Product{}, remoteErr("poner en entrega", err)
	}

	details := fmt.Sprintf("Producto puesto en entrega (%d unidades reservadas)", p.Stock)
	if err := s.appendLog(ctx, id, p.Name, entity.ActionDeliverySet, details); err != nil {
		return entity.Product{}, err
	}
	if err := s.reloadLocked(ctx); err != nil {
		return entity.Product{}, err
	}
	s.log.Info().Int64("product_id", id).Msg("producto en entrega")

	final, _ := s.findProduct(id)
	return final, nil
}

// ConfirmSaleFromDelivery convierte la entrega en una venta del stock
// reservado completo, con el mismo cálculo financiero congelado de AddSale
// (precios vigentes del producto), y limpia el marcador de entrega en la misma
// operación: para el caller la confirmación es atómica.
func (s *Store) ConfirmSaleFromDelivery(ctx context.Context, id int64) (entity.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findProduct(id)
	if !ok {
		return entity.Sale{}, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	if !p.EnEntrega() {
		return entity.Sale{}, fmt.Errorf("%w: el producto no está en entrega", domain.ErrConflict)
	}
	if p.Stock <= 0 {
		return entity.Sale{}, fmt.Errorf("%w: entrega sin unidades reservadas", domain.ErrInsufficientStock)
	}

	opID := uuid.New().String()
	qty := p.Stock

	// Paso 1: vaciar el stock y salir del sub-estado de entrega.
	if _, err := s.remote.Update(ctx, gateway.TableProducts, id, mapper.StockStatusPatch(0, entity.StatusOutOfStock)); err != nil {
		return entity.Sale{}, remoteErr("confirmar entrega", err)
	}

	// Paso 2: insertar la venta; si falla, volver al estado reservado.
	sale := entity.NewSale(p, qty, s.now())
	rec, err := s.remote.Create(ctx, gateway.TableSales, mapper.FromSale(sale))
	if err != nil {
		return entity.Sale{}, s.compensateStock(ctx, "confirm_delivery", opID, p, err)
	}
	created := mapper.ToSale(rec)

	details := fmt.Sprintf("Entrega confirmada: venta de %d x %s (total %s)", qty, p.Name, created.TotalPrice)
	if logErr := s.appendLog(ctx, id, p.Name, entity.ActionSold, details); logErr != nil {
		return entity.Sale{}, logErr
	}
	if err := s.reloadLocked(ctx); err != nil {
		return entity.Sale{}, err
	}
	s.log.Info().Str("op_id", opID).Int64("product_id", id).Int("qty", qty).Msg("entrega confirmada")
	return created, nil
}

// CancelDelivery devuelve las unidades reservadas al stock disponible sin
// crear venta. El status resultante se deriva del stock restaurado.
func (s *Store) CancelDelivery(ctx context.Context, id int64) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findProduct(id)
	if !ok {
		return entity.Product{}, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	if !p.EnEntrega() {
		return entity.Product{}, fmt.Errorf("%w: el producto no está en entrega", domain.ErrConflict)
	}

	if _, err := s.remote.Update(ctx, gateway.TableProducts, id, mapper.StatusPatch(entity.StatusForStock(p.Stock))); err != nil {
		return entity.Product{}, remoteErr("cancelar entrega", err)
	}

	details := fmt.Sprintf("Entrega cancelada (%d unidades devueltas al stock)", p.Stock)
	if err := s.appendLog(ctx, id, p.Name, entity.ActionDeliveryCancelled, details); err != nil {
		return entity.Product{}, err
	}
	if err := s.reloadLocked(ctx); err != nil {
		return entity.Product{}, err
	}
	s.log.Info().Int64("product_id", id).Msg("entrega cancelada")

	final, _ := s.findProduct(id)
	return final, nil
}
