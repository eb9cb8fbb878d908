package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
)

// TopProductResult agregado de ventas por producto.
type TopProductResult struct {
	ProductID        string
	SKU              string
	Name             string
	Category         string
	SellingPrice     decimal.Decimal
	TotalSold        int
	TotalRevenue     decimal.Decimal
	TransactionCount int
}

// CatalogSummary totales del catálogo.
type CatalogSummary struct {
	TotalProducts   int
	TotalStockItems int
	TotalStockValue decimal.Decimal // stock * precio de venta
}

// ReportRepository consultas de solo lectura para dashboard y reportes.
type ReportRepository interface {
	// SalesTotals suma y cantidad de ventas en [from, to).
	SalesTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error)
	// TopProducts productos más vendidos por cantidad. from/to nil = sin límite.
	TopProducts(ctx context.Context, from, to *time.Time, limit int) ([]TopProductResult, error)
	// LowStock productos con stock < threshold, de menor a mayor stock.
	LowStock(ctx context.Context, threshold, limit int) ([]*entity.Product, error)
	CatalogSummary(ctx context.Context) (CatalogSummary, error)
}
