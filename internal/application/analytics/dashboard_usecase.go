// Package analytics contiene los casos de uso de dashboard y reportes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

const (
	dashboardLowStockLimit = 10
	dashboardRecentSales   = 5
	dashboardTopProducts   = 5
)

// ThresholdSource umbral de stock bajo configurable.
type ThresholdSource interface {
	LowStockThreshold(ctx context.Context, def int) int
}

// DashboardUseCase genera el resumen del día y del mes en curso.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	saleRepo   repository.SaleRepository
	thresholds ThresholdSource
	defaultLow int
	now        func() time.Time
}

// NewDashboardUseCase construye el caso de uso. defaultLow aplica si no hay setting.
func NewDashboardUseCase(
	reportRepo repository.ReportRepository,
	saleRepo repository.SaleRepository,
	thresholds ThresholdSource,
	defaultLow int,
) *DashboardUseCase {
	return &DashboardUseCase{
		reportRepo: reportRepo,
		saleRepo:   saleRepo,
		thresholds: thresholds,
		defaultLow: defaultLow,
		now:        time.Now,
	}
}

// GetSummary construye el DashboardResponse.
//
// Cinco consultas en paralelo:
//  1. SalesTotals(hoy)        → TodayTotal + TodayTransactionCount
//  2. LowStock(umbral, 10)    → LowStockProducts
//  3. CatalogSummary()        → TotalProducts + TotalStockValue
//  4. List(ventas, 5)         → RecentSales
//  5. TopProducts(mes, 5)     → TopSellingProducts
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	now := uc.now().UTC()

	// ── Rangos de fecha (UTC, fin exclusivo) ──────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	threshold := uc.thresholds.LowStockThreshold(ctx, uc.defaultLow)

	type totalsResult struct {
		amount decimal.Decimal
		count  int
		err    error
	}
	type productsResult struct {
		products []*entity.Product
		err      error
	}
	type summaryResult struct {
		summary repository.CatalogSummary
		err     error
	}
	type salesResult struct {
		sales []*entity.Sale
		err   error
	}
	type topResult struct {
		top []repository.TopProductResult
		err error
	}

	todayCh := make(chan totalsResult, 1)
	lowCh := make(chan productsResult, 1)
	catalogCh := make(chan summaryResult, 1)
	recentCh := make(chan salesResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		amount, count, err := uc.reportRepo.SalesTotals(ctx, todayStart, todayEnd)
		todayCh <- totalsResult{amount, count, err}
	}()
	go func() {
		list, err := uc.reportRepo.LowStock(ctx, threshold, dashboardLowStockLimit)
		lowCh <- productsResult{list, err}
	}()
	go func() {
		s, err := uc.reportRepo.CatalogSummary(ctx)
		catalogCh <- summaryResult{s, err}
	}()
	go func() {
		list, _, err := uc.saleRepo.List(ctx, repository.SaleFilter{Limit: dashboardRecentSales})
		recentCh <- salesResult{list, err}
	}()
	go func() {
		top, err := uc.reportRepo.TopProducts(ctx, &monthStart, &todayEnd, dashboardTopProducts)
		topCh <- topResult{top, err}
	}()

	today := <-todayCh
	low := <-lowCh
	catalog := <-catalogCh
	recent := <-recentCh
	top := <-topCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if catalog.err != nil {
		return nil, fmt.Errorf("dashboard: catálogo: %w", catalog.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: ventas recientes: %w", recent.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: más vendidos: %w", top.err)
	}

	return &dto.DashboardResponse{
		TodayTotal:            today.amount,
		TodayTransactionCount: today.count,
		LowStockProducts:      dto.FromProducts(low.products),
		TotalProducts:         catalog.summary.TotalProducts,
		TotalStockValue:       catalog.summary.TotalStockValue,
		RecentSales:           dto.FromSales(recent.sales),
		TopSellingProducts:    fromTopProducts(top.top),
	}, nil
}

func fromTopProducts(rows []repository.TopProductResult) []dto.TopProductResponse {
	out := make([]dto.TopProductResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductResponse{
			ID:               r.ProductID,
			SKU:              r.SKU,
			Name:             r.Name,
			Category:         r.Category,
			SellingPrice:     r.SellingPrice,
			TotalSold:        r.TotalSold,
			TotalRevenue:     r.TotalRevenue,
			TransactionCount: r.TransactionCount,
		})
	}
	return out
}
