package views_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/views"
)

func catalogo() []entity.Product {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []entity.Product{
		{ID: 1, Name: "Cafetera italiana", Category: "Hogar > Cocina", Supplier: "Andina", Stock: 12, Status: entity.StatusActive, CreatedAt: base},
		{ID: 2, Name: "Lámpara LED", Category: "Hogar > Iluminación", Supplier: "ElectroMayorista", Stock: 0, Status: entity.StatusOutOfStock, CreatedAt: base.AddDate(0, 0, 1)},
		{ID: 3, Name: "Audífonos", Category: "Tecnología > Audio", Supplier: "ImportTech", Stock: 8, Status: entity.StatusActive, CreatedAt: base.AddDate(0, 0, 2)},
	}
}

func TestFilterProducts_BusquedaInsensibleAAcentos(t *testing.T) {
	out := views.FilterProducts(catalogo(), views.ProductFilter{Query: "lampara"})
	require.Len(t, out, 1, "la búsqueda ignora acentos y mayúsculas")
	assert.Equal(t, "Lámpara LED", out[0].Name)

	out = views.FilterProducts(catalogo(), views.ProductFilter{Query: "AUDÍFONOS"})
	require.Len(t, out, 1)
	assert.Equal(t, "Audífonos", out[0].Name)
}

func TestFilterProducts_BuscaEnCategoriaYProveedor(t *testing.T) {
	out := views.FilterProducts(catalogo(), views.ProductFilter{Query: "importtech"})
	require.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].ID)

	out = views.FilterProducts(catalogo(), views.ProductFilter{Query: "cocina"})
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
}

func TestFilterProducts_CategoriaPorHojaORutaCompleta(t *testing.T) {
	out := views.FilterProducts(catalogo(), views.ProductFilter{Category: "Iluminación"})
	require.Len(t, out, 1, "la hoja de la jerarquía coincide")

	out = views.FilterProducts(catalogo(), views.ProductFilter{Category: "Hogar > Iluminación"})
	require.Len(t, out, 1, "la ruta completa también")

	out = views.FilterProducts(catalogo(), views.ProductFilter{Category: "Hogar"})
	assert.Empty(t, out, "un segmento intermedio no coincide")
}

func TestFilterProducts_PorStatus(t *testing.T) {
	out := views.FilterProducts(catalogo(), views.ProductFilter{Status: entity.StatusOutOfStock})
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
}

func TestFilterProducts_OrdenPorDefectoYDescendente(t *testing.T) {
	out := views.FilterProducts(catalogo(), views.ProductFilter{})
	require.Len(t, out, 3)
	assert.Equal(t, int64(1), out[0].ID, "por defecto ordena por created_at ascendente")

	out = views.FilterProducts(catalogo(), views.ProductFilter{Descending: true})
	assert.Equal(t, int64(3), out[0].ID)
}

func TestFilterProducts_OrdenPorCampo(t *testing.T) {
	out := views.FilterProducts(catalogo(), views.ProductFilter{SortBy: views.SortByStock, Descending: true})
	require.Len(t, out, 3)
	assert.Equal(t, 12, out[0].Stock)
	assert.Equal(t, 0, out[2].Stock)

	out = views.FilterProducts(catalogo(), views.ProductFilter{SortBy: views.SortByName})
	assert.Equal(t, "Audífonos", out[0].Name, "el orden por nombre también ignora acentos")
}

func TestFilterProducts_NoMutaLaEntrada(t *testing.T) {
	products := catalogo()
	_ = views.FilterProducts(products, views.ProductFilter{SortBy: views.SortByStock, Descending: true})
	assert.Equal(t, int64(1), products[0].ID, "el filtrado trabaja sobre una copia")
}
