package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrRemote            = errors.New("error del backend remoto")
	ErrConflict          = errors.New("conflicto con el estado actual")
)

// CompensationError indica que una operación multi-paso falló a mitad de camino
// y la compensación (revertir el primer paso) también falló. El estado local y
// el remoto pueden haber divergido: el caller debe forzar una recarga completa
// y no confiar en el estado en memoria.
type CompensationError struct {
	Op        string // operación que falló (ej. "add_sale")
	OpID      string // id de correlación de la operación
	Cause     error  // error del paso que falló
	RevertErr error  // error del intento de compensación
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("compensación fallida en %s (op %s): %v; revert: %v",
		e.Op, e.OpID, e.Cause, e.RevertErr)
}

// Unwrap expone la causa original para errors.Is/As.
func (e *CompensationError) Unwrap() error { return e.Cause }

// IsCompensationFailed distingue la deriva irrecuperable de un ErrRemote común.
func IsCompensationFailed(err error) bool {
	var ce *CompensationError
	return errors.As(err, &ce)
}
