package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/store"
	"github.com/jhoicas/negocio-api/internal/views"
)

// ProductHandler maneja las peticiones HTTP de productos (protegido).
type ProductHandler struct {
	store *store.Store
}

// NewProductHandler construye el handler.
func NewProductHandler(s *store.Store) *ProductHandler {
	return &ProductHandler{store: s}
}

// List devuelve el catálogo con filtro y orden opcionales
// (?q=, ?category=, ?status=, ?sort_by=, ?order=desc).
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := views.ProductFilter{
		Query:      c.Query("q"),
		Category:   c.Query("category"),
		Status:     entity.ProductStatus(c.Query("status")),
		SortBy:     views.SortField(c.Query("sort_by")),
		Descending: c.Query("order") == "desc",
	}
	products := views.FilterProducts(h.store.Products(), filter)
	return c.JSON(dto.NewProductListResponse(products))
}

// GetByID devuelve un producto del estado local.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	p, ok := h.store.ProductByID(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(dto.NewProductResponse(p))
}

// Create crea un producto.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.store.AddProduct(c.Context(), in.Input())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(p))
}

// Update reemplaza los atributos editables de un producto.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.store.UpdateProduct(c.Context(), id, in.Input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponse(p))
}

// Delete elimina un producto. Las ventas históricas conservan el nombre.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	if err := h.store.DeleteProduct(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Duplicate crea una copia del producto con sufijo en el nombre.
func (h *ProductHandler) Duplicate(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	p, err := h.store.DuplicateProduct(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(p))
}

// Import crea un lote de productos; los inválidos se omiten sin abortar.
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportProductsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	list := make([]store.ProductInput, 0, len(in.Products))
	for _, r := range in.Products {
		list = append(list, r.Input())
	}
	res, err := h.store.AddMultipleProducts(c.Context(), list)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ImportResponse{Created: res.Created, Skipped: res.Skipped})
}

// BulkUpdate aplica una edición masiva a los productos indicados.
func (h *ProductHandler) BulkUpdate(c *fiber.Ctx) error {
	var in dto.BulkUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	n, err := h.store.UpdateMultipleProducts(c.Context(), in.IDs, in.Update())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CountResponse{Affected: n})
}

// BulkDelete elimina los productos indicados uno por uno.
func (h *ProductHandler) BulkDelete(c *fiber.Ctx) error {
	var in dto.IDsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	n, err := h.store.DeleteMultipleProducts(c.Context(), in.IDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CountResponse{Affected: n})
}

// SetDelivery reserva el producto para entrega.
func (h *ProductHandler) SetDelivery(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	p, err := h.store.SetProductToDelivery(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponse(p))
}

// ConfirmDelivery convierte la entrega en venta del stock reservado completo.
func (h *ProductHandler) ConfirmDelivery(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	sale, err := h.store.ConfirmSaleFromDelivery(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSaleResponse(sale))
}

// CancelDelivery devuelve las unidades reservadas al stock disponible.
func (h *ProductHandler) CancelDelivery(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	p, err := h.store.CancelDelivery(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponse(p))
}

// parseID lee el parámetro :id como entero positivo. Si no es válido,
// responde 400 y devuelve ok = false.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
		return 0, false
	}
	return int64(id), true
}
