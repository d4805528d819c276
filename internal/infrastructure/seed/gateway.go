// Package seed contiene el gateway en memoria para el modo demo: sin base de
// datos configurada, la app arranca con un catálogo de ejemplo y las
// escrituras viven solo en el proceso.
package seed

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/gateway"
)

// Gateway implementación en memoria del puerto remoto. Replica el contrato
// observable del backend real: ids asignados por el servidor, created_at
// asignado al insertar y listados en orden descendente de creación.
type Gateway struct {
	mu     sync.Mutex
	tables map[string][]gateway.Record
	nextID map[string]int64
	now    func() time.Time
}

// New crea el gateway vacío.
func New() *Gateway {
	return &Gateway{
		tables: map[string][]gateway.Record{
			gateway.TableProducts:    {},
			gateway.TableSales:       {},
			gateway.TableActivityLog: {},
		},
		nextID: map[string]int64{
			gateway.TableProducts:    1,
			gateway.TableSales:       1,
			gateway.TableActivityLog: 1,
		},
		now: time.Now,
	}
}

// NewWithDemoData crea el gateway con el catálogo de demostración cargado.
func NewWithDemoData() *Gateway {
	g := New()
	g.seed()
	return g
}

func (g *Gateway) seed() {
	base := g.now().AddDate(0, 0, -30)
	products := []gateway.Record{
		{"name": "Cafetera italiana 6 tazas", "category": "Hogar > Cocina", "supplier": "Distribuidora Andina", "buy_price": dec("45000"), "sell_price": dec("78000"), "stock": int64(12)},
		{"name": "Juego de ollas x5", "category": "Hogar > Cocina", "supplier": "Distribuidora Andina", "buy_price": dec("120000"), "sell_price": dec("189000"), "stock": int64(4)},
		{"name": "Lámpara de escritorio LED", "category": "Hogar > Iluminación", "supplier": "ElectroMayorista", "buy_price": dec("28000"), "sell_price": dec("52000"), "stock": int64(20)},
		{"name": "Audífonos inalámbricos", "category": "Tecnología > Audio", "supplier": "ImportTech", "buy_price": dec("65000"), "sell_price": dec("110000"), "stock": int64(8)},
		{"name": "Cargador rápido USB-C", "category": "Tecnología > Accesorios", "supplier": "ImportTech", "buy_price": dec("15000"), "sell_price": dec("32000"), "stock": int64(0)},
		{"name": "Termo de acero 1L", "category": "Hogar > Cocina", "supplier": "Distribuidora Andina", "buy_price": dec("22000"), "sell_price": dec("41000"), "stock": int64(15)},
	}
	for i, p := range products {
		stock := p["stock"].(int64)
		status := "active"
		if stock == 0 {
			status = "out_of_stock"
		}
		p["status"] = status
		p["image_url"] = ""
		p["created_at"] = base.AddDate(0, 0, i)
		g.insertLocked(gateway.TableProducts, p)
	}

	// Algunas ventas recientes para que el panel no arranque vacío.
	sales := []struct {
		productID int64
		name      string
		qty       int64
		sell, buy string
		daysAgo   int
	}{
		{1, "Cafetera italiana 6 tazas", 2, "78000", "45000", 6},
		{3, "Lámpara de escritorio LED", 1, "52000", "28000", 4},
		{4, "Audífonos inalámbricos", 3, "110000", "65000", 2},
		{6, "Termo de acero 1L", 2, "41000", "22000", 1},
	}
	for _, v := range sales {
		qty := decimal.NewFromInt(v.qty)
		sell := dec(v.sell)
		margin := sell.Sub(dec(v.buy))
		g.insertLocked(gateway.TableSales, gateway.Record{
			"product_id":   v.productID,
			"product_name": v.name,
			"quantity":     v.qty,
			"sell_price":   sell,
			"total_price":  sell.Mul(qty),
			"total_margin": margin.Mul(qty),
			"created_at":   g.now().AddDate(0, 0, -v.daysAgo),
		})
		g.insertLocked(gateway.TableActivityLog, gateway.Record{
			"product_id":   v.productID,
			"product_name": v.name,
			"action":       "sold",
			"details":      fmt.Sprintf("Venta: %d x %s (total %s)", v.qty, v.name, sell.Mul(qty)),
			"created_at":   g.now().AddDate(0, 0, -v.daysAgo),
		})
	}
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// insertLocked asigna id (y created_at si falta) y agrega la fila. Requiere mu
// o uso durante la construcción.
func (g *Gateway) insertLocked(table string, fields gateway.Record) gateway.Record {
	rec := make(gateway.Record, len(fields)+2)
	for k, v := range fields {
		rec[k] = v
	}
	rec["id"] = g.nextID[table]
	g.nextID[table]++
	if _, ok := rec["created_at"]; !ok {
		rec["created_at"] = g.now()
	}
	g.tables[table] = append(g.tables[table], rec)
	return rec
}

// List devuelve copias de las filas, más recientes primero.
func (g *Gateway) List(ctx context.Context, table string) ([]gateway.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rows, ok := g.tables[table]
	if !ok {
		return nil, fmt.Errorf("tabla desconocida: %s", table)
	}
	out := make([]gateway.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, copyRecord(r))
	}
	sort.SliceStable(out, func(a, b int) bool {
		ta, tb := asTime(out[a]["created_at"]), asTime(out[b]["created_at"])
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return asID(out[a]["id"]) > asID(out[b]["id"])
	})
	return out, nil
}

// Create inserta una fila asignando id y created_at.
func (g *Gateway) Create(ctx context.Context, table string, fields gateway.Record) (gateway.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.tables[table]; !ok {
		return nil, fmt.Errorf("tabla desconocida: %s", table)
	}
	return copyRecord(g.insertLocked(table, fields)), nil
}

// Update mezcla los campos sobre la fila existente.
func (g *Gateway) Update(ctx context.Context, table string, id int64, fields gateway.Record) (gateway.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rows, ok := g.tables[table]
	if !ok {
		return nil, fmt.Errorf("tabla desconocida: %s", table)
	}
	for _, r := range rows {
		if asID(r["id"]) == id {
			for k, v := range fields {
				r[k] = v
			}
			return copyRecord(r), nil
		}
	}
	return nil, fmt.Errorf("%s: fila %d no encontrada", table, id)
}

// Delete elimina una fila por id.
func (g *Gateway) Delete(ctx context.Context, table string, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	rows, ok := g.tables[table]
	if !ok {
		return fmt.Errorf("tabla desconocida: %s", table)
	}
	for i, r := range rows {
		if asID(r["id"]) == id {
			g.tables[table] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s: fila %d no encontrada", table, id)
}

// DeleteMany elimina el conjunto de ids indicado.
func (g *Gateway) DeleteMany(ctx context.Context, table string, ids []int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	rows, ok := g.tables[table]
	if !ok {
		return fmt.Errorf("tabla desconocida: %s", table)
	}
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := rows[:0]
	for _, r := range rows {
		if !drop[asID(r["id"])] {
			kept = append(kept, r)
		}
	}
	g.tables[table] = kept
	return nil
}

func copyRecord(r gateway.Record) gateway.Record {
	out := make(gateway.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func asID(v any) int64 {
	if id, ok := v.(int64); ok {
		return id
	}
	return 0
}

func asTime(v any) time.Time {
	if t, ok := v.(time.Time); ok {
		return t
	}
	return time.Time{}
}
