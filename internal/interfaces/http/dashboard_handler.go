package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/store"
	"github.com/jhoicas/negocio-api/internal/views"
)

// DashboardHandler arma el panel y expone la bitácora y el reseteo de datos.
type DashboardHandler struct {
	store *store.Store
	now   func() time.Time
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(s *store.Store) *DashboardHandler {
	return &DashboardHandler{store: s, now: time.Now}
}

// Get devuelve el panel completo para la ventana pedida (?days=30; 0 = todo el
// historial). Todos los agregados se calculan con el mismo "ahora".
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	days := c.QueryInt("days", 0)
	now := h.now()

	products := h.store.Products()
	sales := h.store.Sales()
	window := views.FilterSalesByDays(sales, days, now)

	return c.JSON(dto.DashboardResponse{
		Days:            days,
		Summary:         dto.NewSalesSummaryResponse(views.SummarizeSales(sales, days, now)),
		StockValue:      views.StockValue(products),
		PotentialProfit: views.PotentialProfit(products),
		ProfitSeries:    dto.NewProfitSeriesResponse(views.ProfitSeries(sales, days, now)),
		TopProducts:     dto.NewTopProductsResponse(views.TopProductsByRevenue(window, views.TopProductos)),
		Categories:      dto.NewCategoryStatsResponse(views.ByCategory(products)),
	})
}

// Activity devuelve la bitácora completa, más reciente primero.
func (h *DashboardHandler) Activity(c *fiber.Ctx) error {
	return c.JSON(dto.NewActivityListResponse(h.store.Activity()))
}

// Reset borra productos, ventas y bitácora. Irreversible.
func (h *DashboardHandler) Reset(c *fiber.Ctx) error {
	if err := h.store.ResetData(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
