// Package dto define los contratos JSON de la API. Las entidades de dominio
// nunca se serializan directo: cada respuesta pasa por un DTO explícito.
package dto

// ErrorResponse respuesta uniforme de error.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CountResponse resultado de una operación masiva.
type CountResponse struct {
	Affected int `json:"affected"`
}

// ImportResponse resultado de una importación de productos.
type ImportResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
