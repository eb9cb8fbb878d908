package bootstrap

import (
	"time"

	"github.com/jhoicas/kawok-pos/internal/application/analytics"
	"github.com/jhoicas/kawok-pos/internal/application/auth"
	"github.com/jhoicas/kawok-pos/internal/application/inventory"
	"github.com/jhoicas/kawok-pos/internal/application/sales"
	"github.com/jhoicas/kawok-pos/internal/application/seed"
	"github.com/jhoicas/kawok-pos/internal/application/usecase"
	"github.com/jhoicas/kawok-pos/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/kawok-pos/internal/interfaces/http"
	"github.com/jhoicas/kawok-pos/pkg/config"
)

// RouterDeps construye todos los casos de uso sobre los repositorios dados.
func RouterDeps(cfg *config.Config, s *Stores, denylist auth.TokenDenylist) apphttp.RouterDeps {
	settingsUC := usecase.NewSettingsUseCase(s.Tx, s.Settings)
	saleQuery := sales.NewQueryUseCase(s.Sales)
	authUC := auth.NewAuthUseCase(s.Users, denylist, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	lowStock := cfg.Store.LowStockThreshold

	return apphttp.RouterDeps{
		ProductUC:        usecase.NewProductUseCase(s.Tx, s.Products),
		SettingsUC:       settingsUC,
		RegisterMovement: inventory.NewRegisterMovementUseCase(s.Tx, s.Products, s.Movements),
		StockOpname:      inventory.NewStockOpnameUseCase(s.Tx, s.Opnames),
		Reconcile:        inventory.NewReconcileUseCase(s.Products, s.Movements),
		Checkout: sales.NewCheckoutUseCase(s.Tx, s.Products,
			sales.RandomInvoiceNumber{Prefix: cfg.Store.InvoicePrefix}),
		SaleQuery: saleQuery,
		Receipt:   sales.NewReceiptUseCase(saleQuery, s.Settings, pdf.NewReceiptGenerator()),
		Dashboard: analytics.NewDashboardUseCase(s.Reports, s.Sales, settingsUC, lowStock),
		Reports:   analytics.NewReportUseCase(s.Products, s.Sales, s.Movements, s.Reports, settingsUC, lowStock),
		AuthUC:    authUC,
		Auth: apphttp.AuthConfig{
			Secret:      cfg.JWT.Secret,
			CookieName:  cfg.Cookie.Name,
			Revocations: authUC,
		},
		Cookie: apphttp.CookieSettings{
			Name:   cfg.Cookie.Name,
			Secure: cfg.Cookie.Secure,
			MaxAge: time.Duration(cfg.JWT.Expiration) * time.Minute,
		},
	}
}

// SeedDeps dependencias del seed sobre los repositorios dados.
func SeedDeps(s *Stores) seed.Deps {
	return seed.Deps{
		Users:    s.Users,
		Products: s.Products,
		Settings: s.Settings,
		Catalog:  usecase.NewProductUseCase(s.Tx, s.Products),
		Config:   usecase.NewSettingsUseCase(s.Tx, s.Settings),
	}
}
