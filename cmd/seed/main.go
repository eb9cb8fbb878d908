// seed carga el usuario administrador, los productos de ejemplo (con su movimiento
// de apertura) y la configuración de la tienda. Se puede ejecutar varias veces.
//
// Uso: go run ./cmd/seed [-admin-password clave]
package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jhoicas/kawok-pos/internal/application/seed"
	"github.com/jhoicas/kawok-pos/internal/bootstrap"
	"github.com/jhoicas/kawok-pos/pkg/config"
	"github.com/jhoicas/kawok-pos/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	password := flag.String("admin-password", cfg.Seed.AdminPassword, "password del usuario administrador")
	flag.Parse()

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")
	if cfg.DB.Driver == bootstrap.DriverMemory {
		log.Error().Msg("DB_DRIVER=memory: el seed no persiste nada, use postgres")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	stores, err := bootstrap.OpenStores(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer stores.Close()

	res, err := seed.Run(ctx, bootstrap.SeedDeps(stores), *password)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().
		Bool("admin_created", res.AdminCreated).
		Str("products", strings.Join(res.ProductsCreated, ",")).
		Str("settings", strings.Join(res.SettingsCreated, ",")).
		Msg("seed finalizado")
}
