package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/negocio-api/internal/interfaces/http"
	"github.com/jhoicas/negocio-api/internal/store"
	"github.com/jhoicas/negocio-api/pkg/logger"
)

// buildAPI arma la app completa en modo demo (gateway en memoria, sin auth),
// la misma composición que cmd/api con DB sin configurar.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	st := store.New(seed.New(), logger.Nop())
	require.NoError(t, st.Load(context.Background()))

	app := fiber.New()
	app.Use(apphttp.RequestID())
	apphttp.Router(app, apphttp.RouterDeps{Store: st, JWTSecret: ""})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func crearProducto(t *testing.T, app *fiber.App, name string, stock int) int64 {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/products", fiber.Map{
		"name":       name,
		"category":   "Hogar > Cocina",
		"supplier":   "Distribuidora Andina",
		"buy_price":  "45000",
		"sell_price": "78000",
		"stock":      stock,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	return int64(body["id"].(float64))
}

func TestAPI_CicloProducto(t *testing.T) {
	app := buildAPI(t)
	id := crearProducto(t, app, "Cafetera italiana", 12)

	resp := doJSON(t, app, http.MethodGet, "/api/products/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	decodeJSON(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Cafetera italiana", list[0]["name"])
	assert.Equal(t, "active", list[0]["status"])

	// Filtro de texto insensible a acentos vía query string.
	resp = doJSON(t, app, http.MethodGet, "/api/products/?q=CAFETERA", nil)
	decodeJSON(t, resp, &list)
	assert.Len(t, list, 1)

	resp = doJSON(t, app, http.MethodGet, "/api/products/?q=inexistente", nil)
	decodeJSON(t, resp, &list)
	assert.Empty(t, list)

	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+itoa(id), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ProductoInexistente_404(t *testing.T) {
	app := buildAPI(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products/999", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ValidacionDeProducto_400(t *testing.T) {
	app := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products", fiber.Map{
		"name": "", "category": "C", "supplier": "S",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestAPI_VentaDescuentaStock(t *testing.T) {
	app := buildAPI(t)
	id := crearProducto(t, app, "Audífonos", 10)

	resp := doJSON(t, app, http.MethodPost, "/api/sales", fiber.Map{
		"product_id": id, "quantity": 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale map[string]any
	decodeJSON(t, resp, &sale)
	assert.Equal(t, "234000", sale["total_price"], "total = 78000 * 3 congelado")

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+itoa(id), nil)
	var p map[string]any
	decodeJSON(t, resp, &p)
	assert.Equal(t, float64(7), p["stock"])
}

func TestAPI_StockInsuficiente_409(t *testing.T) {
	app := buildAPI(t)
	id := crearProducto(t, app, "Termo", 2)

	resp := doJSON(t, app, http.MethodPost, "/api/sales", fiber.Map{
		"product_id": id, "quantity": 5,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
}

func TestAPI_FlujoDeEntrega(t *testing.T) {
	app := buildAPI(t)
	id := crearProducto(t, app, "Juego de ollas", 4)

	resp := doJSON(t, app, http.MethodPost, "/api/products/"+itoa(id)+"/delivery", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p map[string]any
	decodeJSON(t, resp, &p)
	assert.Equal(t, "in_delivery", p["status"])

	resp = doJSON(t, app, http.MethodPost, "/api/products/"+itoa(id)+"/delivery/confirm", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale map[string]any
	decodeJSON(t, resp, &sale)
	assert.Equal(t, float64(4), sale["quantity"], "la confirmación vende toda la reserva")

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+itoa(id), nil)
	decodeJSON(t, resp, &p)
	assert.Equal(t, "out_of_stock", p["status"])
}

func TestAPI_DashboardYBitacora(t *testing.T) {
	app := buildAPI(t)
	id := crearProducto(t, app, "Lámpara", 5)

	resp := doJSON(t, app, http.MethodPost, "/api/sales", fiber.Map{
		"product_id": id, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/dashboard?days=30", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash map[string]any
	decodeJSON(t, resp, &dash)
	summary := dash["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["orders"])
	assert.Equal(t, "78000", summary["revenue"])

	resp = doJSON(t, app, http.MethodGet, "/api/activity", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var activity []map[string]any
	decodeJSON(t, resp, &activity)
	require.Len(t, activity, 2, "created + sold")
	assert.Equal(t, "sold", activity[0]["action"], "la bitácora llega más reciente primero")
}

func TestAPI_Reset(t *testing.T) {
	app := buildAPI(t)
	crearProducto(t, app, "Temporal", 1)

	resp := doJSON(t, app, http.MethodPost, "/api/reset", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/products/", nil)
	var list []map[string]any
	decodeJSON(t, resp, &list)
	assert.Empty(t, list)
}

func TestAPI_RequestID(t *testing.T) {
	app := buildAPI(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products/", nil)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"), "cada respuesta lleva id de correlación")

	req := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
	req.Header.Set("X-Request-ID", "mi-id-custom")
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, "mi-id-custom", resp2.Header.Get("X-Request-ID"), "el id del cliente se respeta")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
