package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/store"
	"github.com/jhoicas/negocio-api/internal/views"
)

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	store *store.Store
	now   func() time.Time
}

// NewSaleHandler construye el handler.
func NewSaleHandler(s *store.Store) *SaleHandler {
	return &SaleHandler{store: s, now: time.Now}
}

// List devuelve las ventas, opcionalmente acotadas a una ventana de días
// calendario (?days=30; sin parámetro o 0 = todas).
func (h *SaleHandler) List(c *fiber.Ctx) error {
	days := c.QueryInt("days", 0)
	sales := views.FilterSalesByDays(h.store.Sales(), days, h.now())
	return c.JSON(dto.NewSaleListResponse(sales))
}

// Create registra una venta descontando stock.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.store.AddSale(c.Context(), in.ProductID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSaleResponse(sale))
}

// Cancel revierte una venta restaurando el stock si el producto aún existe.
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	if err := h.store.CancelSale(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
