// Package seed carga los datos iniciales de la tienda: usuario administrador,
// productos de muestra con su movimiento de apertura y la configuración.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kawok-pos/internal/application/auth"
	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/application/usecase"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

// AdminEmail cuenta administradora creada por el seed.
const AdminEmail = "admin@kawokvape.com"

type sampleProduct struct {
	sku, name, description, category string
	buyPrice, sellingPrice           int64
	stock                            int
}

var sampleProducts = []sampleProduct{
	{"KV001", "Vape Pod Starter Kit", "Pod vape starter kit untuk pemula", "Starter Kit", 150000, 200000, 25},
	{"KV002", "Liquid Tobacco 3mg", "Liquid rasa tobacco dengan nikotin 3mg", "Liquid", 75000, 100000, 50},
	{"KV003", "Coil Replacement Pack", "Pack coil replacement (5 pcs)", "Aksesoris", 50000, 75000, 8},
	{"KV004", "Vape Mod Box", "Mod box vape 200W", "Mod", 300000, 450000, 5},
	{"KV005", "Battery 18650", "Battery 18650 3000mAh", "Battery", 75000, 100000, 3},
}

var defaultSettings = []entity.Setting{
	{Key: entity.SettingStoreName, Value: "KawokVapeStore"},
	{Key: entity.SettingStoreAddress, Value: "Jl. Contoh No. 123, Jakarta"},
	{Key: entity.SettingStorePhone, Value: "+62 812-3456-7890"},
	{Key: entity.SettingCurrency, Value: "IDR"},
	{Key: entity.SettingLowStockThreshold, Value: "10"},
}

// Deps repositorios y casos de uso que usa el seed.
type Deps struct {
	Users    repository.UserRepository
	Products repository.ProductRepository
	Settings repository.SettingRepository
	Catalog  *usecase.ProductUseCase
	Config   *usecase.SettingsUseCase
}

// Result resumen de lo creado (lo existente se omite).
type Result struct {
	AdminCreated    bool
	ProductsCreated []string
	SettingsCreated []string
}

// Run es idempotente: no toca usuarios, SKUs ni claves de configuración que ya existan.
func Run(ctx context.Context, d Deps, adminPassword string) (*Result, error) {
	res := &Result{}

	admin, err := d.Users.FindByEmail(ctx, AdminEmail)
	if err != nil {
		return nil, fmt.Errorf("seed: buscar admin: %w", err)
	}
	if admin == nil {
		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		admin = &entity.User{
			ID:           uuid.New().String(),
			Email:        AdminEmail,
			Name:         "Administrator",
			PasswordHash: hash,
			IsAdmin:      true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := d.Users.Create(ctx, admin); err != nil {
			return nil, fmt.Errorf("seed: crear admin: %w", err)
		}
		res.AdminCreated = true
	}

	for _, sp := range sampleProducts {
		existing, err := d.Products.GetBySKU(ctx, sp.sku)
		if err != nil {
			return nil, fmt.Errorf("seed: buscar %s: %w", sp.sku, err)
		}
		if existing != nil {
			continue
		}
		buy := decimal.NewFromInt(sp.buyPrice)
		sell := decimal.NewFromInt(sp.sellingPrice)
		stock := sp.stock
		if _, err := d.Catalog.Create(ctx, admin.ID, dto.CreateProductRequest{
			SKU:          sp.sku,
			Name:         sp.name,
			Description:  sp.description,
			Category:     sp.category,
			BuyPrice:     &buy,
			SellingPrice: &sell,
			Stock:        &stock,
		}); err != nil {
			return nil, fmt.Errorf("seed: crear %s: %w", sp.sku, err)
		}
		res.ProductsCreated = append(res.ProductsCreated, sp.sku)
	}

	missing := map[string]string{}
	for _, s := range defaultSettings {
		current, err := d.Settings.Get(ctx, s.Key)
		if err != nil {
			return nil, fmt.Errorf("seed: leer %s: %w", s.Key, err)
		}
		if current == nil {
			missing[s.Key] = s.Value
			res.SettingsCreated = append(res.SettingsCreated, s.Key)
		}
	}
	if len(missing) > 0 {
		if _, err := d.Config.Update(ctx, missing); err != nil {
			return nil, fmt.Errorf("seed: configuración: %w", err)
		}
	}
	return res, nil
}
