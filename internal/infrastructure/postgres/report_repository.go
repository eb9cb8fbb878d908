package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura (dashboard y reportes).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesTotals suma y cantidad de ventas en [from, to).
func (r *ReportRepo) SalesTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	var total decimal.Decimal
	var count int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2`, from, to,
	).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales totals: %w", err)
	}
	return total, count, nil
}

// TopProducts agrupa sale_items por producto, ordenado por unidades vendidas.
func (r *ReportRepo) TopProducts(ctx context.Context, from, to *time.Time, limit int) ([]repository.TopProductResult, error) {
	w := &whereBuilder{}
	if from != nil {
		w.add(`s.created_at >= ?`, *from)
	}
	if to != nil {
		w.add(`s.created_at < ?`, *to)
	}
	pageSQL, args := w.page(limit, 0)
	query := `
		SELECT p.id, p.sku, p.name, COALESCE(p.category, ''), p.selling_price,
			SUM(i.qty)::int AS total_sold, SUM(i.subtotal) AS total_revenue, COUNT(i.id)::int
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		JOIN products p ON p.id = i.product_id` + w.sql() + `
		GROUP BY p.id, p.sku, p.name, p.category, p.selling_price
		ORDER BY total_sold DESC, total_revenue DESC, p.name` + pageSQL
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	out := make([]repository.TopProductResult, 0)
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.SKU, &t.Name, &t.Category, &t.SellingPrice,
			&t.TotalSold, &t.TotalRevenue, &t.TransactionCount); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// LowStock productos con stock < threshold, de menor a mayor stock.
func (r *ReportRepo) LowStock(ctx context.Context, threshold, limit int) ([]*entity.Product, error) {
	w := &whereBuilder{}
	w.add(`stock < ?`, threshold)
	pageSQL, args := w.page(limit, 0)
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products`+w.sql()+` ORDER BY stock ASC, name`+pageSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CatalogSummary cantidad de productos, unidades y valor del stock a precio de venta.
func (r *ReportRepo) CatalogSummary(ctx context.Context) (repository.CatalogSummary, error) {
	var s repository.CatalogSummary
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(stock), 0)::int, COALESCE(SUM(stock * selling_price), 0)
		FROM products`,
	).Scan(&s.TotalProducts, &s.TotalStockItems, &s.TotalStockValue)
	if err != nil {
		return s, fmt.Errorf("catalog summary: %w", err)
	}
	return s, nil
}
