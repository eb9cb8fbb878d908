package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kawok-pos/internal/application/analytics"
	"github.com/jhoicas/kawok-pos/internal/application/auth"
	"github.com/jhoicas/kawok-pos/internal/application/inventory"
	"github.com/jhoicas/kawok-pos/internal/application/sales"
	"github.com/jhoicas/kawok-pos/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	SettingsUC       *usecase.SettingsUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	StockOpname      *inventory.StockOpnameUseCase
	Reconcile        *inventory.ReconcileUseCase
	Checkout         *sales.CheckoutUseCase
	SaleQuery        *sales.QueryUseCase
	Receipt          *sales.ReceiptUseCase
	Dashboard        *analytics.DashboardUseCase
	Reports          *analytics.ReportUseCase
	AuthUC           *auth.AuthUseCase
	Auth             AuthConfig
	Cookie           CookieSettings
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (Bearer o cookie de sesión)
	protected := api.Group("/", AuthMiddleware(deps.Auth))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Products
	productHandler := NewProductHandler(deps.ProductUC, deps.Reconcile)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/reconciliation", productHandler.Reconciliation)

	// Sales
	saleHandler := NewSaleHandler(deps.Checkout, deps.SaleQuery, deps.Receipt)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", saleHandler.Checkout)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Inventory
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.StockOpname)
	protected.Post("/stock-movements", inventoryHandler.RegisterMovement)
	protected.Get("/stock-movements", inventoryHandler.ListMovements)
	protected.Post("/stock-opname", inventoryHandler.CreateOpname)
	protected.Get("/stock-opname", inventoryHandler.ListOpnames)
	protected.Get("/stock-opname/:id", inventoryHandler.GetOpname)

	// Dashboard y reportes
	protected.Get("/dashboard", NewDashboardHandler(deps.Dashboard).GetSummary)
	protected.Get("/reports", NewReportHandler(deps.Reports).Generate)

	// Settings (escritura solo admin)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", settingsHandler.GetAll)
	protected.Post("/settings", RequireAdmin(), settingsHandler.Update)
}
