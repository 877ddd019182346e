package http

import (
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/feira"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/interfaces/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Service     *feira.Service
	WS          *ws.Handler // nil = sin canales WebSocket (tests de la API de lectura)
	CORSOrigins string
	SwaggerFile string // ruta de docs/swagger.json; vacío = sin /docs
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	origins := deps.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{AllowOrigins: origins}))

	// Swagger UI: http://localhost:<port>/docs
	if deps.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.SwaggerFile,
			Path:     "docs",
			Title:    "Feira API",
		}))
	}

	// Inspección del catálogo y de la feria (solo lectura)
	catalog := NewCatalogHandler(deps.Service)
	app.Get("/products", catalog.List)
	app.Get("/products/:id", catalog.GetByID)
	app.Get("/feira", catalog.Feira)

	if deps.WS == nil {
		return
	}

	// Canales en tiempo real: comprador y vendedor
	channels := app.Group("/ws", ws.RequireUpgrade)
	channels.Get("/cliente", deps.WS.Serve(entity.AudienceBuyers))
	channels.Get("/vendedor", deps.WS.Serve(entity.AudienceSellers))
}
