package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/feira"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/infrastructure/memory"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/infrastructure/pubsub"
	httpRouter "github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/interfaces/http"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/interfaces/ws"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/scheduler"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/pkg/config"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Catálogo inicial
	products := memory.DefaultCatalog()
	if cfg.Feira.CatalogFile != "" {
		products, err = memory.LoadCatalog(cfg.Feira.CatalogFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Feira.CatalogFile).Msg("catálogo")
		}
	}
	store := memory.NewInventoryStore()
	if err := memory.Seed(store, products); err != nil {
		log.Fatal().Err(err).Msg("carga del catálogo")
	}
	log.Info().Int("products", len(products)).Msg("catálogo cargado")

	// Difusión: WebSocket siempre; Redis opcional
	hub := ws.NewHub(log.Component("hub"))
	broadcasters := feira.Broadcasters{hub}

	var mirror *pubsub.EventMirror
	if cfg.Redis.Enabled() {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := pubsub.NewClient(pingCtx, cfg.Redis)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		mirror = pubsub.NewEventMirror(client, cfg.Redis.ChannelPrefix, log.Component("redis"))
		broadcasters = append(broadcasters, mirror)
		log.Info().Str("addr", cfg.Redis.Addr).Str("prefix", cfg.Redis.ChannelPrefix).Msg("espejo de eventos en Redis habilitado")
	}

	svc := feira.NewService(store, broadcasters, cfg.Feira.HistoryWindow)
	dispatcher := ws.NewDispatcher(svc, hub, log.Component("dispatcher"))
	wsHandler := ws.NewHandler(hub, dispatcher, log.Component("ws"))

	var sched *scheduler.Scheduler
	if cfg.Feira.ReportCron != "" {
		sched = scheduler.New(cfg.Feira.ReportCron, svc, log.Component("scheduler"))
		if err := sched.Start(); err != nil {
			log.Fatal().Err(err).Msg("scheduler")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"service":     cfg.App.Name,
			"buyers":      hub.Count(entity.AudienceBuyers),
			"sellers":     hub.Count(entity.AudienceSellers),
			"sessionOpen": svc.SessionState().Open,
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Service:     svc,
		WS:          wsHandler,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		SwaggerFile: "./docs/swagger.json",
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if sched != nil {
		sched.Stop()
	}
	// Cerrar los canales antes de apagar Fiber: los lectores WebSocket terminan al cerrarse su conexión.
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if mirror != nil {
		mirror.Close()
	}

	log.Info().Msg("aplicación detenida")
}
