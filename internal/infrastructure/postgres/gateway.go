package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/negocio-api/internal/domain/gateway"
)

// columnas permitidas por tabla. Las tablas y columnas llegan de código propio,
// no del usuario, pero la lista blanca evita construir SQL con identificadores
// arbitrarios.
var tableColumns = map[string][]string{
	gateway.TableProducts: {
		"id", "name", "category", "supplier",
		"buy_price", "sell_price", "stock", "status", "image_url", "created_at",
	},
	gateway.TableSales: {
		"id", "product_id", "product_name", "quantity",
		"sell_price", "total_price", "total_margin", "created_at",
	},
	gateway.TableActivityLog: {
		"id", "product_id", "product_name", "action", "details", "created_at",
	},
}

// Gateway implementación PostgreSQL del puerto remoto. Cada método es una sola
// sentencia; no hay transacciones porque el modelo de consistencia es
// compensación + recarga, no atomicidad del backend.
type Gateway struct {
	pool *pgxpool.Pool
}

// NewGateway crea el gateway sobre un pool existente.
func NewGateway(pool *pgxpool.Pool) *Gateway {
	return &Gateway{pool: pool}
}

// List devuelve todas las filas de la tabla, más recientes primero.
func (g *Gateway) List(ctx context.Context, table string) ([]gateway.Record, error) {
	cols, err := columnsFor(table)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY created_at DESC, id DESC",
		strings.Join(cols, ", "), table,
	)
	rows, err := g.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var out []gateway.Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", table, err)
		}
		rec := make(gateway.Record, len(cols))
		for i, col := range cols {
			rec[col] = values[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return out, nil
}

// Create inserta una fila y devuelve el registro completo con el id y
// created_at asignados por el servidor.
func (g *Gateway) Create(ctx context.Context, table string, fields gateway.Record) (gateway.Record, error) {
	all, err := columnsFor(table)
	if err != nil {
		return nil, err
	}
	cols, args, err := orderedFields(table, fields)
	if err != nil {
		return nil, err
	}
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(all, ", "),
	)
	rec, err := g.queryOne(ctx, query, all, args...)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", table, err)
	}
	return rec, nil
}

// Update actualiza las columnas indicadas de una fila y devuelve el registro
// resultante.
func (g *Gateway) Update(ctx context.Context, table string, id int64, fields gateway.Record) (gateway.Record, error) {
	all, err := columnsFor(table)
	if err != nil {
		return nil, err
	}
	cols, args, err := orderedFields(table, fields)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("update %s: sin columnas", table)
	}
	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(sets, ", "), len(args), strings.Join(all, ", "),
	)
	rec, err := g.queryOne(ctx, query, all, args...)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", table, id, err)
	}
	return rec, nil
}

// Delete elimina una fila por id.
func (g *Gateway) Delete(ctx context.Context, table string, id int64) error {
	if _, err := columnsFor(table); err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)
	if _, err := g.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete %s %d: %w", table, id, err)
	}
	return nil
}

// DeleteMany elimina varias filas en una sola sentencia. Con ids vacío borra
// la tabla entera (es el camino del reseteo de datos).
func (g *Gateway) DeleteMany(ctx context.Context, table string, ids []int64) error {
	if _, err := columnsFor(table); err != nil {
		return err
	}
	if ids == nil {
		query := fmt.Sprintf("DELETE FROM %s", table)
		if _, err := g.pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("delete many %s: %w", table, err)
		}
		return nil
	}
	if len(ids) == 0 {
		return nil
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ANY($1)", table)
	if _, err := g.pool.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("delete many %s: %w", table, err)
	}
	return nil
}

func (g *Gateway) queryOne(ctx context.Context, query string, cols []string, args ...any) (gateway.Record, error) {
	rows, err := g.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("fila no encontrada")
	}
	values, err := rows.Values()
	if err != nil {
		return nil, err
	}
	rec := make(gateway.Record, len(cols))
	for i, col := range cols {
		rec[col] = values[i]
	}
	return rec, rows.Err()
}

func columnsFor(table string) ([]string, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return nil, fmt.Errorf("tabla desconocida: %s", table)
	}
	return cols, nil
}

// orderedFields valida los campos contra la lista blanca y los devuelve en
// orden determinista para que el SQL generado sea estable.
func orderedFields(table string, fields gateway.Record) ([]string, []any, error) {
	allowed := make(map[string]bool, len(tableColumns[table]))
	for _, col := range tableColumns[table] {
		allowed[col] = true
	}
	cols := make([]string, 0, len(fields))
	for col := range fields {
		if !allowed[col] {
			return nil, nil, fmt.Errorf("columna desconocida en %s: %s", table, col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)
	args := make([]any, len(cols))
	for i, col := range cols {
		args[i] = fields[col]
	}
	return cols, args, nil
}
