package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/dto"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/feira"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/infrastructure/memory"
	apphttp "github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/interfaces/http"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/interfaces/ws"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// swaggerFile documento OpenAPI versionado en la raíz del módulo.
const swaggerFile = "../../../docs/swagger.json"

// buildTestApp construye la app con el catálogo de ejemplo y los canales WebSocket.
func buildTestApp(t *testing.T) (*fiber.App, *feira.Service) {
	t.Helper()
	store := memory.NewInventoryStore()
	require.NoError(t, memory.Seed(store, memory.DefaultCatalog()))
	hub := ws.NewHub(nil)
	svc := feira.NewService(store, hub, 3)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Service:     svc,
		WS:          ws.NewHandler(hub, ws.NewDispatcher(svc, hub, nil), nil),
		SwaggerFile: swaggerFile,
	})
	return app, svc
}

func doGet(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ListProducts(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, body := doGet(t, app, "/products")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out, 2)
	assert.Equal(t, "p1", out[0].ID)
	assert.Equal(t, "p2", out[1].ID)
	assert.Equal(t, "50", out[0].Price.String())
	assert.Contains(t, string(body), `"price":50,`, "el precio viaja como número JSON")
}

func TestRouter_GetProduct(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, body := doGet(t, app, "/products/p2")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "Caneca Legal", p.Name)
	assert.Equal(t, 0, p.Stock)

	resp, body = doGet(t, app, "/products/nope")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "NOT_FOUND", e.Code)
}

func TestRouter_FeiraSnapshot(t *testing.T) {
	app, svc := buildTestApp(t)
	ctx := context.Background()

	_, err := svc.OpenSession(ctx, dto.SessionOpenRequest{})
	require.NoError(t, err)
	_, err = svc.SubmitSale(ctx, dto.SaleSubmitRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	_, err = svc.CloseSession(ctx)
	require.NoError(t, err)
	_, err = svc.OpenSession(ctx, dto.SessionOpenRequest{})
	require.NoError(t, err)

	resp, body := doGet(t, app, "/feira")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var snap dto.FeiraSnapshot
	require.NoError(t, json.Unmarshal(body, &snap))
	require.NotNil(t, snap.Active)
	assert.Empty(t, snap.Active.Sales)
	require.Len(t, snap.History, 1)
	require.Len(t, snap.History[0].Sales, 1)
	assert.Equal(t, 2, snap.History[0].Sales[0].Quantity)
	assert.NotNil(t, snap.History[0].ClosedAt)
}

func TestRouter_WebSocketRequiresUpgrade(t *testing.T) {
	app, _ := buildTestApp(t)

	for _, path := range []string{"/ws/cliente", "/ws/vendedor"} {
		resp, _ := doGet(t, app, path)
		assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode, path)
	}
}

func TestRouter_CORS(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouter_SwaggerUI(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, body := doGet(t, app, "/docs")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body)
}

// El documento OpenAPI describe las rutas de lectura que registra el router.
func TestSwaggerDocument_CoversReadRoutes(t *testing.T) {
	raw, err := os.ReadFile(swaggerFile)
	require.NoError(t, err)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	for _, path := range []string{"/products", "/products/{id}", "/feira"} {
		require.Contains(t, doc.Paths, path)
		assert.Contains(t, doc.Paths[path], "get", path)
	}
}
