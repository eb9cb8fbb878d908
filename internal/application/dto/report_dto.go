package dto

import "github.com/shopspring/decimal"

// Tipos de reporte.
const (
	ReportSales          = "sales"
	ReportStock          = "stock"
	ReportTopSelling     = "top-selling"
	ReportStockMovements = "stock-movements"
)

// ReportRequest parámetros de GET /reports.
type ReportRequest struct {
	Type     string `query:"type"`
	FromDate string `query:"fromDate"`
	ToDate   string `query:"toDate"`
	Format   string `query:"format"` // json | csv
}

// SalesReportSummary totales del reporte de ventas.
type SalesReportSummary struct {
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	TotalTransactions  int             `json:"totalTransactions"`
	TotalItems         int             `json:"totalItems"`
	PaymentMethodStats map[string]int  `json:"paymentMethodStats"`
	AverageTransaction decimal.Decimal `json:"averageTransaction"`
}

// SalesReport reporte de ventas.
type SalesReport struct {
	Summary SalesReportSummary `json:"summary"`
	Sales   []SaleResponse     `json:"sales"`
}

// CategoryStat agregado por categoría.
type CategoryStat struct {
	Count      int             `json:"count"`
	TotalStock int             `json:"totalStock"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// StockReportSummary totales del reporte de stock.
type StockReportSummary struct {
	TotalProducts      int                     `json:"totalProducts"`
	TotalStockValue    decimal.Decimal         `json:"totalStockValue"`
	TotalStockItems    int                     `json:"totalStockItems"`
	LowStockProducts   int                     `json:"lowStockProducts"`
	OutOfStockProducts int                     `json:"outOfStockProducts"`
	CategoryStats      map[string]CategoryStat `json:"categoryStats"`
}

// StockReport reporte de stock.
type StockReport struct {
	Summary            StockReportSummary `json:"summary"`
	Products           []ProductResponse  `json:"products"`
	LowStockProducts   []ProductResponse  `json:"lowStockProducts"`
	OutOfStockProducts []ProductResponse  `json:"outOfStockProducts"`
}

// TopSellingReport reporte de más vendidos.
type TopSellingReport struct {
	TopProducts []TopProductResponse `json:"topProducts"`
}

// MovementReportSummary totales del reporte de movimientos.
type MovementReportSummary struct {
	TotalMovements int            `json:"totalMovements"`
	TotalQuantity  int            `json:"totalQuantity"`
	TypeStats      map[string]int `json:"typeStats"`
}

// MovementReport reporte de movimientos.
type MovementReport struct {
	Summary   MovementReportSummary `json:"summary"`
	Movements []MovementResponse    `json:"movements"`
}
