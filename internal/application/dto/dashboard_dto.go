package dto

import "github.com/shopspring/decimal"

// DashboardResponse respuesta de GET /dashboard.
type DashboardResponse struct {
	TodayTotal            decimal.Decimal      `json:"todayTotal"`
	TodayTransactionCount int                  `json:"todayTransactionCount"`
	LowStockProducts      []ProductResponse    `json:"lowStockProducts"`
	TotalProducts         int                  `json:"totalProducts"`
	TotalStockValue       decimal.Decimal      `json:"totalStockValue"`
	RecentSales           []SaleResponse       `json:"recentSales"`
	TopSellingProducts    []TopProductResponse `json:"topSellingProducts"`
}

// TopProductResponse producto más vendido.
type TopProductResponse struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	SellingPrice     decimal.Decimal `json:"sellingPrice"`
	TotalSold        int             `json:"totalSold"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TransactionCount int             `json:"transactionCount"`
}
