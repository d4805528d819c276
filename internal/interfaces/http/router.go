package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/store"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store     *store.Store
	JWTSecret string // vacío = modo demo, sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token, salvo en modo demo)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Store)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Post("/import", productHandler.Import)
	products.Post("/bulk-update", productHandler.BulkUpdate)
	products.Post("/bulk-delete", productHandler.BulkDelete)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/duplicate", productHandler.Duplicate)
	products.Post("/:id/delivery", productHandler.SetDelivery)
	products.Post("/:id/delivery/confirm", productHandler.ConfirmDelivery)
	products.Delete("/:id/delivery", productHandler.CancelDelivery)

	// Sales (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Store)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Delete("/:id", saleHandler.Cancel)

	// Dashboard, bitácora y reseteo (protegido)
	dashboardHandler := NewDashboardHandler(deps.Store)
	protected.Get("/dashboard", dashboardHandler.Get)
	protected.Get("/activity", dashboardHandler.Activity)
	protected.Post("/reset", dashboardHandler.Reset)
}
