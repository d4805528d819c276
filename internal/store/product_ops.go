package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/gateway"
	"github.com/jhoicas/negocio-api/internal/mapper"
)

// ProductInput datos de entrada para crear o editar un producto.
type ProductInput struct {
	Name      string
	Category  string
	Supplier  string
	BuyPrice  decimal.Decimal
	SellPrice decimal.Decimal
	Stock     int
	ImageURL  string
}

// Validate aplica las reglas de entrada: textos requeridos no vacíos,
// precios no negativos, stock no negativo.
func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationErr("nombre requerido")
	}
	if strings.TrimSpace(in.Category) == "" {
		return validationErr("categoría requerida")
	}
	if strings.TrimSpace(in.Supplier) == "" {
		return validationErr("proveedor requerido")
	}
	if in.BuyPrice.IsNegative() {
		return validationErr("precio de compra no puede ser negativo")
	}
	if in.SellPrice.IsNegative() {
		return validationErr("precio de venta no puede ser negativo")
	}
	if in.Stock < 0 {
		return validationErr("stock no puede ser negativo")
	}
	return nil
}

// AddProduct valida, crea el producto en el remoto y registra la entrada
// `created`. El status inicial se deriva del stock.
func (s *Store) AddProduct(ctx context.Context, in ProductInput) (entity.Product, error) {
	if err := in.Validate(); err != nil {
		return entity.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := entity.Product{
		Name:      strings.TrimSpace(in.Name),
		Category:  strings.TrimSpace(in.Category),
		Supplier:  strings.TrimSpace(in.Supplier),
		BuyPrice:  in.BuyPrice,
		SellPrice: in.SellPrice,
		Stock:     in.Stock,
		Status:    entity.StatusForStock(in.Stock),
		ImageURL:  in.ImageURL,
	}

	rec, err := s.remote.Create(ctx, gateway.TableProducts, mapper.FromProduct(p))
	if err != nil {
		return entity.Product{}, remoteErr("crear producto", err)
	}
	created := mapper.ToProduct(rec)

	details := fmt.Sprintf("Producto creado (stock inicial: %d)", created.Stock)
	if err := s.appendLog(ctx, created.ID, created.Name, entity.ActionCreated, details); err != nil {
		return entity.Product{}, err
	}
	if err := s.reloadLocked(ctx); err != nil {
		return entity.Product{}, err
	}
	s.log.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("producto creado")
	return created, nil
}

// UpdateProduct reemplaza los atributos editables del producto y registra una
// entrada `updated` con el resumen campo a campo de lo que cambió.
// El status se recalcula del stock resultante, salvo que el producto esté en
// entrega: ese sub-estado solo lo quitan las operaciones de entrega.
func (s *Store) UpdateProduct(ctx context.Context, id int64, in ProductInput) (entity.Product, error) {
	if err := in.Validate(); err != nil {
		return entity.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.findProduct(id)
	if !ok {
		return entity.Product{}, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}

	updated := old
	updated.Name = strings.TrimSpace(in.Name)
	updated.Category = strings.TrimSpace(in.Category)
	updated.Supplier = strings.TrimSpace(in.Supplier)
	updated.BuyPrice = in.BuyPrice
	updated.SellPrice = in.SellPrice
	updated.Stock = in.Stock
	updated.ImageURL = in.ImageURL
	if !old.EnEntrega() {
		updated.Status = entity.StatusForStock(in.Stock)
	}

	if _, err := s.remote.Update(ctx, gateway.TableProducts, id, mapper.FromProduct(updated)); err != nil {
		return entity.Product{}, remoteErr("actualizar producto", err)
	}

	details := buildUpdateDetails(old, updated)
	if details == "" {
		details = "Sin cambios"
	}
	if err := s.appendLog(ctx, id, updated.Name, entity.ActionUpdated, details); err != nil {
		return entity.Product{}, err
	}
	if err := s.reloadLocked(ctx); err != nil {
		return entity.Product{}, err
	}
	s.log.Info().Int64("product_id", id).Msg("producto actualizado")

	final, _ := s.findProduct(id)
	return final, nil
}

// DeleteProduct elimina el producto del remoto y registra `deleted`.
// Ventas y bitácora conservan el nombre denormalizado, así que el historial
// sigue siendo legible después del borrado.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findProduct(id)
	if !ok {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}

	if err := s.remote.Delete(ctx, gateway.TableProducts, id); err != nil {
		return remoteErr("eliminar producto", err)
	}
	if err := s.appendLog(ctx, id, p.Name, entity.ActionDeleted, "Producto eliminado"); err != nil {
		return err
	}
	if err := s.reloadLocked(ctx); err != nil {
		return err
	}
	s.log.Info().Int64("product_id", id).Str("name", p.Name).Msg("producto eliminado")
	return nil
}

// DeleteMultipleProducts elimina productos uno por uno. Cada borrado exitoso
// registra su propia entrada `deleted` con marcador de eliminación masiva: si
// el borrado k falla, las entradas de los k-1 anteriores ya quedaron en la
// bitácora. Devuelve cuántos se eliminaron.
func (s *Store) DeleteMultipleProducts(ctx context.Context, ids []int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	var firstErr error
	for _, id := range ids {
		p, ok := s.findProduct(id)
		if !ok {
			firstErr = fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
			break
		}
		if err := s.remote.Delete(ctx, gateway.TableProducts, id); err != nil {
			firstErr = remoteErr(fmt.Sprintf("eliminar producto %d", id), err)
			break
		}
		if err := s.appendLog(ctx, id, p.Name, entity.ActionDeleted, "Producto eliminado (eliminación masiva)"); err != nil {
			firstErr = err
			break
		}
		deleted++
	}

	if err := s.reloadLocked(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	s.log.Info().Int("deleted", deleted).Int("requested", len(ids)).Msg("eliminación masiva")
	return deleted, firstErr
}

// DuplicateProduct crea una copia del producto con sufijo en el nombre.
// El backend asigna id y created_at nuevos; el status se deriva del stock
// (el sub-estado de entrega no se copia).
func (s *Store) DuplicateProduct(ctx context.Context, id int64) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orig, ok := s.findProduct(id)
	if !ok {
		return entity.Product{}, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}

	dup := orig
	dup.ID = 0
	dup.Name = orig.Name + " (copia)"
	dup.Status = entity.StatusForStock(orig.Stock)

	rec, err := s.remote.Create(ctx, gateway.TableProducts, mapper.FromProduct(dup))
	if err != nil {
		return entity.Product{}, remoteErr("duplicar producto", err)
	}
	created := mapper.ToProduct(rec)

	details := fmt.Sprintf("Producto creado (duplicado de %q)", orig.Name)
	if err := s.appendLog(ctx, created.ID, created.Name, entity.ActionCreated, details); err != nil {
		return entity.Product{}, err
	}
	if err := s.reloadLocked(ctx); err != nil {
		return entity.Product{}, err
	}
	return created, nil
}

// ImportResult resultado de una importación masiva.
type ImportResult struct {
	Created int
	Skipped int
}

// AddMultipleProducts importa un lote (ej. CSV). Los ítems que no pasan la
// validación se omiten sin abortar el lote; cada creado registra su propia
// entrada `created`.
func (s *Store) AddMultipleProducts(ctx context.Context, list []ProductInput) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res ImportResult
	for _, in := range list {
		if err := in.Validate(); err != nil {
			res.Skipped++
			continue
		}
		p := entity.Product{
			Name:      strings.TrimSpace(in.Name),
			Category:  strings.TrimSpace(in.Category),
			Supplier:  strings.TrimSpace(in.Supplier),
			BuyPrice:  in.BuyPrice,
			SellPrice: in.SellPrice,
			Stock:     in.Stock,
			Status:    entity.StatusForStock(in.Stock),
			ImageURL:  in.ImageURL,
		}
		rec, err := s.remote.Create(ctx, gateway.TableProducts, mapper.FromProduct(p))
		if err != nil {
			reloadErr := s.reloadLocked(ctx)
			if reloadErr != nil {
				s.log.Error().Err(reloadErr).Msg("recarga tras importación parcial")
			}
			return res, remoteErr("importar producto "+p.Name, err)
		}
		created := mapper.ToProduct(rec)
		if err := s.appendLog(ctx, created.ID, created.Name, entity.ActionCreated, "Producto creado (importación masiva)"); err != nil {
			return res, err
		}
		res.Created++
	}

	if err := s.reloadLocked(ctx); err != nil {
		return res, err
	}
	s.log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("importación masiva")
	return res, nil
}

// buildUpdateDetails arma el resumen legible de un update, un fragmento
// "campo: viejo → nuevo" por campo cambiado. El status no se reporta (es
// derivado) y el cambio de imagen se reporta genérico, sin URLs.
func buildUpdateDetails(old, updated entity.Product) string {
	var frags []string
	if old.Name != updated.Name {
		frags = append(frags, fmt.Sprintf("nombre: %s → %s", old.Name, updated.Name))
	}
	if old.Category != updated.Category {
		frags = append(frags, fmt.Sprintf("categoría: %s → %s", old.Category, updated.Category))
	}
	if old.Supplier != updated.Supplier {
		frags = append(frags, fmt.Sprintf("proveedor: %s → %s", old.Supplier, updated.Supplier))
	}
	if !old.BuyPrice.Equal(updated.BuyPrice) {
		frags = append(frags, fmt.Sprintf("precio de compra: %s → %s", old.BuyPrice, updated.BuyPrice))
	}
	if !old.SellPrice.Equal(updated.SellPrice) {
		frags = append(frags, fmt.Sprintf("precio de venta: %s → %s", old.SellPrice, updated.SellPrice))
	}
	if old.Stock != updated.Stock {
		frags = append(frags, fmt.Sprintf("stock: %d → %d", old.Stock, updated.Stock))
	}
	if old.ImageURL != updated.ImageURL {
		frags = append(frags, "imagen actualizada")
	}
	return strings.Join(frags, ", ")
}
