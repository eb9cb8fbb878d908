package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	_ "github.com/jhoicas/kawok-pos/docs"
	"github.com/jhoicas/kawok-pos/internal/application/seed"
	"github.com/jhoicas/kawok-pos/internal/bootstrap"
	httpRouter "github.com/jhoicas/kawok-pos/internal/interfaces/http"
	"github.com/jhoicas/kawok-pos/pkg/config"
	"github.com/jhoicas/kawok-pos/pkg/logger"
)

// @title        Kawok POS API
// @version      1.0
// @description  Punto de venta e inventario de Kawok Vape Store.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET vacío: secret aleatorio, las sesiones no sobreviven un reinicio")
	}

	ctx := context.Background()
	stores, err := bootstrap.OpenStores(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir persistencia")
	}
	defer stores.Close()

	// Con el driver memory el store arranca vacío
	if stores.Driver == bootstrap.DriverMemory {
		res, err := seed.Run(ctx, bootstrap.SeedDeps(stores), cfg.Seed.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("seed en memoria")
		}
		log.Info().Int("products", len(res.ProductsCreated)).Msg("datos de ejemplo cargados")
	}

	denylist, closeDenylist, err := bootstrap.OpenDenylist(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer closeDenylist()

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(httpLog),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowCredentials: cfg.HTTP.CORSOrigins != "*" && !strings.Contains(cfg.HTTP.CORSOrigins, "*"),
	}))
	app.Use(httpRouter.RequestLogger(httpLog))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kawok POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "driver": stores.Driver})
	})

	httpRouter.Router(app, bootstrap.RouterDeps(cfg, stores, denylist))

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
