package analytics

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

// Formatos de salida.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

const (
	topSellingLimit  = 20
	uncategorized    = "Uncategorized"
	csvTimeLayout    = "2006-01-02 15:04:05"
	reportDateLayout = "2006-01-02"
)

// Report resultado de un reporte: Data se serializa como JSON, Rows es la versión tabular.
type Report struct {
	Type string
	Data any
	Rows [][]string // primera fila = encabezados
}

// ReportUseCase genera los reportes de ventas, stock, más vendidos y movimientos.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	movementRepo repository.StockMovementRepository
	reportRepo   repository.ReportRepository
	thresholds   ThresholdSource
	defaultLow   int
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movementRepo repository.StockMovementRepository,
	reportRepo repository.ReportRepository,
	thresholds ThresholdSource,
	defaultLow int,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		movementRepo: movementRepo,
		reportRepo:   reportRepo,
		thresholds:   thresholds,
		defaultLow:   defaultLow,
		now:          time.Now,
	}
}

// Generate valida la petición y construye el reporte pedido.
func (uc *ReportUseCase) Generate(ctx context.Context, in dto.ReportRequest) (*Report, error) {
	if in.Type == "" {
		in.Type = dto.ReportSales
	}
	v := &domain.ValidationError{}
	switch in.Type {
	case dto.ReportSales, dto.ReportStock, dto.ReportTopSelling, dto.ReportStockMovements:
	default:
		v.Add("type", "debe ser sales, stock, top-selling o stock-movements")
	}
	switch in.Format {
	case "", FormatJSON, FormatCSV:
	default:
		v.Add("format", "debe ser json o csv")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	from, to, err := dto.ParseDateRange(in.FromDate, in.ToDate)
	if err != nil {
		return nil, err
	}

	switch in.Type {
	case dto.ReportStock:
		return uc.stockReport(ctx)
	case dto.ReportTopSelling:
		return uc.topSellingReport(ctx, from, to)
	case dto.ReportStockMovements:
		return uc.movementReport(ctx, from, to)
	default:
		return uc.salesReport(ctx, from, to)
	}
}

// Filename nombre del adjunto CSV: report-<tipo>-<YYYY-MM-DD>.csv.
func (uc *ReportUseCase) Filename(reportType string) string {
	return "report-" + reportType + "-" + uc.now().UTC().Format(reportDateLayout) + ".csv"
}

func (uc *ReportUseCase) salesReport(ctx context.Context, from, to *time.Time) (*Report, error) {
	sales, _, err := uc.saleRepo.List(ctx, repository.SaleFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}

	summary := dto.SalesReportSummary{
		TotalAmount:        decimal.Zero,
		TotalTransactions:  len(sales),
		PaymentMethodStats: map[string]int{},
		AverageTransaction: decimal.Zero,
	}
	rows := [][]string{{"Invoice No", "Date", "Payment Method", "Total Amount", "Items Count", "Cashier"}}
	for _, s := range sales {
		summary.TotalAmount = summary.TotalAmount.Add(s.TotalAmount)
		summary.TotalItems += s.ItemCount()
		summary.PaymentMethodStats[s.PaymentMethod]++
		rows = append(rows, []string{
			s.InvoiceNo,
			s.CreatedAt.UTC().Format(csvTimeLayout),
			s.PaymentMethod,
			s.TotalAmount.String(),
			strconv.Itoa(len(s.Items)),
			s.UserName,
		})
	}
	if len(sales) > 0 {
		summary.AverageTransaction = summary.TotalAmount.Div(decimal.NewFromInt(int64(len(sales)))).Round(2)
	}

	return &Report{
		Type: dto.ReportSales,
		Data: dto.SalesReport{Summary: summary, Sales: dto.FromSales(sales)},
		Rows: rows,
	}, nil
}

func (uc *ReportUseCase) stockReport(ctx context.Context) (*Report, error) {
	products, _, err := uc.productRepo.List(ctx, repository.ProductFilter{Sort: repository.ProductSortName})
	if err != nil {
		return nil, err
	}
	threshold := uc.thresholds.LowStockThreshold(ctx, uc.defaultLow)

	summary := dto.StockReportSummary{
		TotalProducts:   len(products),
		TotalStockValue: decimal.Zero,
		CategoryStats:   map[string]dto.CategoryStat{},
	}
	var low, out []*entity.Product
	rows := [][]string{{"SKU", "Name", "Category", "Stock", "Selling Price", "Stock Value"}}
	for _, p := range products {
		value := p.StockValue()
		summary.TotalStockValue = summary.TotalStockValue.Add(value)
		summary.TotalStockItems += p.Stock
		if p.Stock < threshold {
			low = append(low, p)
		}
		if p.Stock == 0 {
			out = append(out, p)
		}

		cat := p.Category
		if cat == "" {
			cat = uncategorized
		}
		st := summary.CategoryStats[cat]
		st.Count++
		st.TotalStock += p.Stock
		st.TotalValue = st.TotalValue.Add(value)
		summary.CategoryStats[cat] = st

		rows = append(rows, []string{
			p.SKU,
			p.Name,
			p.Category,
			strconv.Itoa(p.Stock),
			p.SellingPrice.String(),
			value.String(),
		})
	}
	summary.LowStockProducts = len(low)
	summary.OutOfStockProducts = len(out)

	return &Report{
		Type: dto.ReportStock,
		Data: dto.StockReport{
			Summary:            summary,
			Products:           dto.FromProducts(products),
			LowStockProducts:   dto.FromProducts(low),
			OutOfStockProducts: dto.FromProducts(out),
		},
		Rows: rows,
	}, nil
}

func (uc *ReportUseCase) topSellingReport(ctx context.Context, from, to *time.Time) (*Report, error) {
	top, err := uc.reportRepo.TopProducts(ctx, from, to, topSellingLimit)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"SKU", "Name", "Category", "Total Sold", "Total Revenue", "Transaction Count"}}
	for _, t := range top {
		rows = append(rows, []string{
			t.SKU,
			t.Name,
			t.Category,
			strconv.Itoa(t.TotalSold),
			t.TotalRevenue.String(),
			strconv.Itoa(t.TransactionCount),
		})
	}
	return &Report{
		Type: dto.ReportTopSelling,
		Data: dto.TopSellingReport{TopProducts: fromTopProducts(top)},
		Rows: rows,
	}, nil
}

func (uc *ReportUseCase) movementReport(ctx context.Context, from, to *time.Time) (*Report, error) {
	movs, _, err := uc.movementRepo.List(ctx, repository.MovementFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	summary := dto.MovementReportSummary{
		TotalMovements: len(movs),
		TypeStats:      map[string]int{},
	}
	rows := [][]string{{"Date", "Type", "Product", "Quantity", "Note", "User"}}
	for _, m := range movs {
		summary.TotalQuantity += m.Qty
		summary.TypeStats[m.Type] += m.Qty
		rows = append(rows, []string{
			m.CreatedAt.UTC().Format(csvTimeLayout),
			m.Type,
			m.ProductName,
			strconv.Itoa(m.Qty),
			m.Note,
			m.UserName,
		})
	}
	return &Report{
		Type: dto.ReportStockMovements,
		Data: dto.MovementReport{Summary: summary, Movements: dto.FromMovements(movs)},
		Rows: rows,
	}, nil
}
