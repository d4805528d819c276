// Package store contiene el Domain Store: el dueño del estado canónico en
// memoria (productos, ventas, bitácora) y de todas las operaciones de mutación.
//
// Estrategia de reconciliación: refetch-after-write. Ninguna operación aplica
// cambios locales de forma optimista; el estado local solo cambia recargando
// las tablas remotas después de que el backend confirmó la escritura. Con eso
// una falla remota deja el estado local exactamente como estaba.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/gateway"
	"github.com/jhoicas/negocio-api/internal/mapper"
	"github.com/jhoicas/negocio-api/pkg/logger"
)

// Store mantiene las colecciones canónicas y orquesta las escrituras
// multi-paso contra el backend remoto, con compensación lógica cuando una
// escritura intermedia falla (el backend no ofrece transacciones al cliente).
//
// Un único mutex serializa las mutaciones: las operaciones se invocan una a la
// vez y ninguna observa estado a medio aplicar.
type Store struct {
	mu     sync.Mutex
	remote gateway.Remote
	log    *logger.Logger
	now    func() time.Time

	products []entity.Product
	sales    []entity.Sale
	activity []entity.ActivityLog
}

// New construye el store con el gateway inyectado. No carga datos: llamar Load.
func New(remote gateway.Remote, log *logger.Logger) *Store {
	return &Store{
		remote: remote,
		log:    log.Componente("store"),
		now:    time.Now,
	}
}

// Load hace el fetch inicial de las tres tablas.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked(ctx)
}

// Reload fuerza una recarga completa desde el remoto. Es la acción de
// recuperación ante una CompensationError: no confiar en el estado local,
// volver a leer la copia durable.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked(ctx)
}

// reloadLocked reemplaza las colecciones con el contenido remoto. Requiere mu.
func (s *Store) reloadLocked(ctx context.Context) error {
	prodRecs, err := s.remote.List(ctx, gateway.TableProducts)
	if err != nil {
		return remoteErr("listar productos", err)
	}
	saleRecs, err := s.remote.List(ctx, gateway.TableSales)
	if err != nil {
		return remoteErr("listar ventas", err)
	}
	logRecs, err := s.remote.List(ctx, gateway.TableActivityLog)
	if err != nil {
		return remoteErr("listar bitácora", err)
	}

	products := make([]entity.Product, 0, len(prodRecs))
	for _, r := range prodRecs {
		products = append(products, mapper.ToProduct(r))
	}
	sales := make([]entity.Sale, 0, len(saleRecs))
	for _, r := range saleRecs {
		sales = append(sales, mapper.ToSale(r))
	}
	activity := make([]entity.ActivityLog, 0, len(logRecs))
	for _, r := range logRecs {
		activity = append(activity, mapper.ToActivityLog(r))
	}

	s.products = products
	s.sales = sales
	s.activity = activity
	return nil
}

// Products devuelve una copia de la colección de productos.
func (s *Store) Products() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Sales devuelve una copia de la colección de ventas.
func (s *Store) Sales() []entity.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

// Activity devuelve una copia de la bitácora.
func (s *Store) Activity() []entity.ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.ActivityLog, len(s.activity))
	copy(out, s.activity)
	return out
}

// ProductByID busca un producto en el estado local.
func (s *Store) ProductByID(id int64) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findProduct(id)
}

// ResetData borra las tres tablas remotas y deja el store vacío.
// Única vía por la que desaparecen entradas de bitácora.
func (s *Store) ResetData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range []string{gateway.TableSales, gateway.TableActivityLog, gateway.TableProducts} {
		ids := s.idsLocked(t)
		if len(ids) == 0 {
			continue
		}
		if err := s.remote.DeleteMany(ctx, t, ids); err != nil {
			return remoteErr("reset de "+t, err)
		}
	}
	s.log.Warn().Msg("datos reiniciados por completo")
	return s.reloadLocked(ctx)
}

func (s *Store) idsLocked(table string) []int64 {
	var ids []int64
	switch table {
	case gateway.TableProducts:
		for _, p := range s.products {
			ids = append(ids, p.ID)
		}
	case gateway.TableSales:
		for _, v := range s.sales {
			ids = append(ids, v.ID)
		}
	case gateway.TableActivityLog:
		for _, l := range s.activity {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// findProduct busca en el estado local. Requiere mu.
func (s *Store) findProduct(id int64) (entity.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

// findSale busca una venta en el estado local. Requiere mu.
func (s *Store) findSale(id int64) (entity.Sale, bool) {
	for _, v := range s.sales {
		if v.ID == id {
			return v, true
		}
	}
	return entity.Sale{}, false
}

// appendLog agrega la entrada de bitácora de una mutación confirmada.
// Se invoca solo después de que la mutación principal quedó en el remoto; si el
// append falla, la mutación ya es durable, así que se recarga de mejor esfuerzo
// para que el estado local refleje la copia remota antes de devolver el error.
func (s *Store) appendLog(ctx context.Context, productID int64, productName string, action entity.LogAction, details string) error {
	entry := entity.ActivityLog{
		ProductID:   productID,
		ProductName: productName,
		Action:      action,
		Details:     details,
	}
	if _, err := s.remote.Create(ctx, gateway.TableActivityLog, mapper.FromActivityLog(entry)); err != nil {
		if reloadErr := s.reloadLocked(ctx); reloadErr != nil {
			s.log.Error().Err(reloadErr).Msg("recarga tras fallo de bitácora")
		}
		return remoteErr("registrar bitácora", err)
	}
	return nil
}

// remoteErr envuelve una falla del gateway conservando el mensaje legible.
func remoteErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrRemote, err)
}

// validationErr construye un error de validación con detalle legible.
func validationErr(detail string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, detail)
}
