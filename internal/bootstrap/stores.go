// Package bootstrap arma repositorios, casos de uso y dependencias HTTP a partir de la configuración.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/kawok-pos/internal/application/auth"
	"github.com/jhoicas/kawok-pos/internal/application/inventory"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
	"github.com/jhoicas/kawok-pos/internal/infrastructure/memory"
	"github.com/jhoicas/kawok-pos/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/kawok-pos/internal/infrastructure/redis"
	"github.com/jhoicas/kawok-pos/pkg/config"
	"github.com/jhoicas/kawok-pos/pkg/logger"
)

// Drivers de persistencia soportados.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Stores repositorios de un driver con su TxRunner.
type Stores struct {
	Driver    string
	Tx        inventory.TxRunner
	Products  repository.ProductRepository
	Movements repository.StockMovementRepository
	Sales     repository.SaleRepository
	Opnames   repository.StockOpnameRepository
	Settings  repository.SettingRepository
	Users     repository.UserRepository
	Reports   repository.ReportRepository
	Close     func()
}

// OpenStores abre el driver configurado. Con postgres aplica las migraciones si DB.Migrate.
func OpenStores(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Stores, error) {
	switch cfg.Driver {
	case DriverMemory:
		store := memory.NewStore()
		log.Warn().Msg("driver memory: los datos se pierden al reiniciar")
		return &Stores{
			Driver:    DriverMemory,
			Tx:        store,
			Products:  store.Products(),
			Movements: store.Movements(),
			Sales:     store.Sales(),
			Opnames:   store.Opnames(),
			Settings:  store.Settings(),
			Users:     store.Users(),
			Reports:   store.Reports(),
			Close:     func() {},
		}, nil
	case DriverPostgres, "":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Migrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				pool.Close()
				return nil, err
			}
			for _, name := range applied {
				log.Info().Str("migration", name).Msg("migración aplicada")
			}
		}
		return &Stores{
			Driver:    DriverPostgres,
			Tx:        postgres.NewTxRunner(pool),
			Products:  postgres.NewProductRepository(pool),
			Movements: postgres.NewStockMovementRepository(pool),
			Sales:     postgres.NewSaleRepository(pool),
			Opnames:   postgres.NewStockOpnameRepository(pool),
			Settings:  postgres.NewSettingRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Reports:   postgres.NewReportRepository(pool),
			Close:     pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("bootstrap: driver desconocido %q", cfg.Driver)
	}
}

// OpenDenylist usa Redis si REDIS_ADDR está definido; si no, una lista en memoria del proceso.
func OpenDenylist(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (auth.TokenDenylist, func(), error) {
	if cfg.Addr == "" {
		log.Info().Msg("tokens revocados en memoria (REDIS_ADDR vacío)")
		return memory.NewTokenDenylist(), func() {}, nil
	}
	client, err := infraredis.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("addr", cfg.Addr).Msg("tokens revocados en Redis")
	return infraredis.NewTokenDenylist(client), func() { _ = client.Close() }, nil
}
