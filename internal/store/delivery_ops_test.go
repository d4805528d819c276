package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/gateway"
)

func TestSetProductToDelivery_ReservaElStock(t *testing.T) {
	remote := newFakeRemote()
	id := remote.seedProduct("Juego de ollas", "120000", "189000", 4)
	s := newTestStore(t, remote)

	p, err := s.SetProductToDelivery(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusInDelivery, p.Status)
	assert.Equal(t, 4, p.Stock, "la reserva no mueve el stock, solo el status")

	activity := s.Activity()
	require.Len(t, activity, 1)
	assert.Equal(t, entity.ActionDeliverySet, activity[0].Action)
	assert.Contains(t, activity[0].Details, "4 unidades reservadas")
}

func TestSetProductToDelivery_Rechazos(t *testing.T) {
	remote := newFakeRemote()
	conStock := remote.seedProduct("Cafetera", "45000", "78000", 6)
	sinStock := remote.seedProduct("Cargador", "15000", "32000", 0)
	s := newTestStore(t, remote)

	_, err := s.SetProductToDelivery(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.SetProductToDelivery(context.Background(), sinStock)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "sin unidades no hay nada que reservar")

	_, err = s.SetProductToDelivery(context.Background(), conStock)
	require.NoError(t, err)
	_, err = s.SetProductToDelivery(context.Background(), conStock)
	assert.ErrorIs(t, err, domain.ErrConflict, "reservar dos veces es conflicto")
}

func TestAddSale_ProductoEnEntregaNoSeVende(t *testing.T) {
	remote := newFakeRemote()
	id := remote.seedProduct("Cafetera", "45000", "78000", 6)
	s := newTestStore(t, remote)

	_, err := s.SetProductToDelivery(context.Background(), id)
	require.NoError(t, err)

	_, err = s.AddSale(context.Background(), id, 1)
	assert.ErrorIs(t, err, domain.ErrConflict, "el stock reservado no se vende del pool normal")
}

func TestConfirmSaleFromDelivery_VendeTodoElStockReservado(t *testing.T) {
	remote := newFakeRemote()
	id := remote.seedProduct("Juego de ollas", "120000", "189000", 4)
	s := newTestStore(t, remote)

	_, err := s.SetProductToDelivery(context.Background(), id)
	require.NoError(t, err)

	sale, err := s.ConfirmSaleFromDelivery(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 4, sale.Quantity, "se vende la reserva completa")
	assert.True(t, sale.TotalPrice.Equal(mustDec("756000")), "total = 189000 * 4, obtuvo %s", sale.TotalPrice)
	assert.True(t, sale.TotalMargin.Equal(mustDec("276000")), "margen = 69000 * 4, obtuvo %s", sale.TotalMargin)

	p, _ := s.ProductByID(id)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, entity.StatusOutOfStock, p.Status, "confirmar limpia el marcador de entrega")
}

func TestConfirmSaleFromDelivery_RequiereEntrega(t *testing.T) {
	remote := newFakeRemote()
	id := remote.seedProduct("Cafetera", "45000", "78000", 6)
	s := newTestStore(t, remote)

	_, err := s.ConfirmSaleFromDelivery(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrConflict, "sin reserva previa no hay entrega que confirmar")
}

func TestConfirmSaleFromDelivery_FallaVenta_VuelveAlEstadoReservado(t *testing.T) {
	remote := newFakeRemote()
	id := remote.seedProduct("Juego de ollas", "120000", "189000", 4)
	s := newTestStore(t, remote)

	_, err := s.SetProductToDelivery(context.Background(), id)
	require.NoError(t, err)

	remote.createErr[gateway.TableSales] = errors.New("timeout del backend")
	_, err = s.ConfirmSaleFromDelivery(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrRemote)

	remote.createErr = map[string]error{}
	require.NoError(t, s.Reload(context.Background()))
	p, _ := s.ProductByID(id)
	assert.Equal(t, 4, p.Stock, "la compensación devuelve las unidades reservadas")
	assert.Equal(t, entity.StatusInDelivery, p.Status, "y conserva el sub-estado de entrega")
}

func TestConfirmSaleFromDelivery_CompensacionFallida_ReportaDivergencia(t *testing.T) {
	remote := newFakeRemote()
	id := remote.seedProduct("Juego de ollas", "120000", "189000", 4)
	s := newTestStore(t, remote)

	_, err := s.SetProductToDelivery(context.Background(), id)
	require.NoError(t, err)

	// Vaciar el stock funciona, la venta falla y el revert también.
	remote.createErr[gateway.TableSales] = errors.New("timeout del backend")
	remote.updatesLeft = 1

	_, err = s.ConfirmSaleFromDelivery(context.Background(), id)
	require.Error(t, err)
	assert.True(t, domain.IsCompensationFailed(err),
		"revert fallido debe reportarse como CompensationError")

	var cerr *domain.CompensationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "confirm_delivery", cerr.Op)
	assert.NotEmpty(t, cerr.OpID)
}

func TestCancelDelivery_DevuelveElStockAlPool(t *testing.T) {
	remote := newFakeRemote()
	id := remote.seedProduct("Juego de ollas", "120000", "189000", 4)
	s := newTestStore(t, remote)

	_, err := s.SetProductToDelivery(context.Background(), id)
	require.NoError(t, err)

	p, err := s.CancelDelivery(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusActive, p.Status, "el status se deriva del stock restaurado")
	assert.Equal(t, 4, p.Stock)
	assert.Empty(t, s.Sales(), "cancelar no crea venta")

	activity := s.Activity()
	require.Len(t, activity, 2)
	assert.Equal(t, entity.ActionDeliveryCancelled, activity[0].Action)
}

func TestCancelDelivery_RequiereEntrega(t *testing.T) {
	remote := newFakeRemote()
	id := remote.seedProduct("Cafetera", "45000", "78000", 6)
	s := newTestStore(t, remote)

	_, err := s.CancelDelivery(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
