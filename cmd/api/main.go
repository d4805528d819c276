package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/negocio-api/internal/domain/gateway"
	"github.com/jhoicas/negocio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/negocio-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/negocio-api/internal/interfaces/http"
	"github.com/jhoicas/negocio-api/internal/store"
	"github.com/jhoicas/negocio-api/pkg/config"
	"github.com/jhoicas/negocio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Sin backend configurado la app opera en modo demo: gateway en memoria
	// con datos de semilla y API sin autenticación.
	var remote gateway.Remote
	jwtSecret := cfg.JWT.Secret
	if cfg.DB.Configurada() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		remote = postgres.NewGateway(pool)
	} else {
		log.Warn().Msg("sin DATABASE_URL ni DB_HOST: modo demo con datos en memoria")
		remote = seed.NewWithDemoData()
		jwtSecret = ""
	}

	st := store.New(remote, log)
	if err := st.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga inicial del estado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:     st,
		JWTSecret: jwtSecret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
