package entity

import "time"

// LogAction acción registrada en la bitácora de actividad.
type LogAction string

const (
	ActionCreated           LogAction = "created"
	ActionUpdated           LogAction = "updated"
	ActionDeleted           LogAction = "deleted"
	ActionSold              LogAction = "sold"
	ActionSaleCancelled     LogAction = "sale_cancelled"
	ActionDeliverySet       LogAction = "delivery_set"
	ActionDeliveryCancelled LogAction = "delivery_cancelled"
)

// ActivityLog entrada inmutable y append-only de la bitácora.
// Cada operación de mutación exitosa del store agrega exactamente una entrada;
// nunca se editan ni se borran salvo por el reset total de datos.
type ActivityLog struct {
	ID          int64
	ProductID   int64 // 0 si el producto ya no existe
	ProductName string
	Action      LogAction
	Details     string
	CreatedAt   time.Time
}
