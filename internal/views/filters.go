package views

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// SortField columna por la que ordenar el listado de productos.
type SortField string

const (
	SortByName      SortField = "name"
	SortByCategory  SortField = "category"
	SortBySupplier  SortField = "supplier"
	SortByBuyPrice  SortField = "buy_price"
	SortBySellPrice SortField = "sell_price"
	SortByStock     SortField = "stock"
	SortByCreatedAt SortField = "created_at"
)

// ProductFilter criterios de filtrado y orden del listado de productos.
type ProductFilter struct {
	Query      string               // búsqueda de texto en nombre/categoría/proveedor
	Category   string               // hoja o ruta completa de categoría
	Status     entity.ProductStatus // vacío = todos
	SortBy     SortField            // vacío = created_at
	Descending bool
}

// quitaDiacriticos elimina las marcas de acento para búsqueda insensible
// ("Cafetera" encuentra "cafetera" y "CAFETERA", "arból" encuentra "arbol").
var quitaDiacriticos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizar pasa a minúsculas y elimina acentos para comparar texto.
func normalizar(s string) string {
	folded, _, err := transform.String(quitaDiacriticos, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// FilterProducts filtra y ordena el listado. Orden estable: empates conservan
// el orden de entrada.
func FilterProducts(products []entity.Product, f ProductFilter) []entity.Product {
	query := normalizar(strings.TrimSpace(f.Query))
	category := normalizar(strings.TrimSpace(f.Category))

	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if category != "" &&
			normalizar(p.Category) != category &&
			normalizar(CategoryLeaf(p.Category)) != category {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, p)
	}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = SortByCreatedAt
	}
	sort.SliceStable(out, func(a, b int) bool {
		less := lessByField(out[a], out[b], sortBy)
		if f.Descending {
			return lessByField(out[b], out[a], sortBy)
		}
		return less
	})
	return out
}

func matchesQuery(p entity.Product, query string) bool {
	return strings.Contains(normalizar(p.Name), query) ||
		strings.Contains(normalizar(p.Category), query) ||
		strings.Contains(normalizar(p.Supplier), query)
}

func lessByField(a, b entity.Product, field SortField) bool {
	switch field {
	case SortByName:
		return normalizar(a.Name) < normalizar(b.Name)
	case SortByCategory:
		return normalizar(a.Category) < normalizar(b.Category)
	case SortBySupplier:
		return normalizar(a.Supplier) < normalizar(b.Supplier)
	case SortByBuyPrice:
		return a.BuyPrice.LessThan(b.BuyPrice)
	case SortBySellPrice:
		return a.SellPrice.LessThan(b.SellPrice)
	case SortByStock:
		return a.Stock < b.Stock
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
