// Package gateway define el puerto hacia el backend CRUD remoto (Supabase).
// El store y el mapper solo conocen este contrato; las implementaciones viven
// en internal/infrastructure.
package gateway

import "context"

// Tablas del backend remoto.
const (
	TableProducts    = "products"
	TableSales       = "sales"
	TableActivityLog = "activity_log"
)

// Record registro crudo en nomenclatura del backend (snake_case: buy_price,
// sell_price, created_at, product_id, product_name, total_price, total_margin).
// Solo el Record Mapper traduce entre esta forma y las entidades de dominio.
type Record map[string]any

// Remote contrato CRUD con el backend. List devuelve los registros ordenados
// por fecha de creación descendente. Los errores solo garantizan un mensaje
// legible; el store no debe asumir ninguna otra forma.
type Remote interface {
	List(ctx context.Context, table string) ([]Record, error)
	Create(ctx context.Context, table string, fields Record) (Record, error)
	Update(ctx context.Context, table string, id int64, fields Record) (Record, error)
	Delete(ctx context.Context, table string, id int64) error
	DeleteMany(ctx context.Context, table string, ids []int64) error
}
