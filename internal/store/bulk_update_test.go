package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/store"
)

func TestUpdateMultipleProducts_IncrementaStock(t *testing.T) {
	remote := newFakeRemote()
	a := remote.seedProduct("A", "100", "200", 3)
	b := remote.seedProduct("B", "100", "200", 0)
	s := newTestStore(t, remote)

	n, err := s.UpdateMultipleProducts(context.Background(), []int64{a, b}, store.BulkUpdate{
		Stock: &store.NumericUpdate{Mode: store.ModeIncrease, Value: mustDec("5")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	pa, _ := s.ProductByID(a)
	pb, _ := s.ProductByID(b)
	assert.Equal(t, 8, pa.Stock)
	assert.Equal(t, 5, pb.Stock)
	assert.Equal(t, entity.StatusActive, pb.Status, "el status se recalcula con el stock nuevo")
}

func TestUpdateMultipleProducts_DecreaseConPisoEnCero(t *testing.T) {
	remote := newFakeRemote()
	id := remote.seedProduct("A", "100", "200", 3)
	s := newTestStore(t, remote)

	n, err := s.UpdateMultipleProducts(context.Background(), []int64{id}, store.BulkUpdate{
		Stock: &store.NumericUpdate{Mode: store.ModeDecrease, Value: mustDec("10")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, _ := s.ProductByID(id)
	assert.Equal(t, 0, p.Stock, "decrease nunca baja de cero")
	assert.Equal(t, entity.StatusOutOfStock, p.Status)
}

func TestUpdateMultipleProducts_DecreaseDePreciosConPisoEnCero(t *testing.T) {
	remote := newFakeRemote()
	id := remote.seedProduct("A", "100", "200", 3)
	s := newTestStore(t, remote)

	n, err := s.UpdateMultipleProducts(context.Background(), []int64{id}, store.BulkUpdate{
		BuyPrice:  &store.NumericUpdate{Mode: store.ModeDecrease, Value: mustDec("40")},
		SellPrice: &store.NumericUpdate{Mode: store.ModeDecrease, Value: mustDec("500")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, _ := s.ProductByID(id)
	assert.True(t, p.BuyPrice.Equal(mustDec("60")), "100 - 40, obtuvo %s", p.BuyPrice)
	assert.True(t, p.SellPrice.IsZero(), "los precios tampoco bajan de cero, obtuvo %s", p.SellPrice)
}

func TestUpdateMultipleProducts_SetPreciosYTexto(t *testing.T) {
	remote := newFakeRemote()
	id := remote.seedProduct("A", "100", "200", 3)
	s := newTestStore(t, remote)

	categoria := "Liquidación"
	n, err := s.UpdateMultipleProducts(context.Background(), []int64{id}, store.BulkUpdate{
		SellPrice: &store.NumericUpdate{Mode: store.ModeSet, Value: mustDec("150")},
		Category:  &categoria,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, _ := s.ProductByID(id)
	assert.True(t, p.SellPrice.Equal(mustDec("150")))
	assert.Equal(t, "Liquidación", p.Category)

	activity := s.Activity()
	require.Len(t, activity, 1)
	assert.Contains(t, activity[0].Details, "Actualización masiva:")
}

func TestUpdateMultipleProducts_IgnoraIdsInexistentes(t *testing.T) {
	remote := newFakeRemote()
	id := remote.seedProduct("A", "100", "200", 3)
	s := newTestStore(t, remote)

	n, err := s.UpdateMultipleProducts(context.Background(), []int64{id, 777}, store.BulkUpdate{
		Stock: &store.NumericUpdate{Mode: store.ModeIncrease, Value: mustDec("1")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n, "los ids que no existen se omiten sin error")
}

func TestUpdateMultipleProducts_PreservaEntrega(t *testing.T) {
	remote := newFakeRemote()
	id := remote.seedProduct("A", "100", "200", 3)
	s := newTestStore(t, remote)

	_, err := s.SetProductToDelivery(context.Background(), id)
	require.NoError(t, err)

	_, err = s.UpdateMultipleProducts(context.Background(), []int64{id}, store.BulkUpdate{
		Stock: &store.NumericUpdate{Mode: store.ModeIncrease, Value: mustDec("2")},
	})
	require.NoError(t, err)

	p, _ := s.ProductByID(id)
	assert.Equal(t, entity.StatusInDelivery, p.Status, "la edición masiva no saca al producto de entrega")
	assert.Equal(t, 5, p.Stock)
}

func TestBulkUpdate_Validaciones(t *testing.T) {
	remote := newFakeRemote()
	s := newTestStore(t, remote)

	vacia := ""
	casos := []store.BulkUpdate{
		{}, // sin campos
		{Stock: &store.NumericUpdate{Mode: "multiply", Value: mustDec("2")}},
		{BuyPrice: &store.NumericUpdate{Mode: store.ModeSet, Value: mustDec("-1")}},
		{Stock: &store.NumericUpdate{Mode: store.ModeSet, Value: mustDec("1.5")}},
		{Category: &vacia},
	}
	for _, b := range casos {
		_, err := s.UpdateMultipleProducts(context.Background(), []int64{1}, b)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}
