package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados calculados sobre el estado en memoria.
type ReportRepo struct{ b *binding }

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(*to) {
		return false
	}
	return true
}

// SalesTotals suma y cantidad de ventas en [from, to).
func (r *ReportRepo) SalesTotals(_ context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	total := decimal.Zero
	count := 0
	err := r.b.read(func(st *state) error {
		for _, s := range st.sales {
			if inRange(s.CreatedAt, &from, &to) {
				total = total.Add(s.TotalAmount)
				count++
			}
		}
		return nil
	})
	return total, count, err
}

// TopProducts productos más vendidos por unidades.
func (r *ReportRepo) TopProducts(_ context.Context, from, to *time.Time, limit int) ([]repository.TopProductResult, error) {
	agg := map[string]*repository.TopProductResult{}
	err := r.b.read(func(st *state) error {
		saleAt := make(map[string]time.Time, len(st.sales))
		for _, s := range st.sales {
			saleAt[s.ID] = s.CreatedAt
		}
		for _, it := range st.saleItems {
			at, ok := saleAt[it.SaleID]
			if !ok || !inRange(at, from, to) {
				continue
			}
			t, ok := agg[it.ProductID]
			if !ok {
				p := st.products[it.ProductID]
				if p == nil {
					continue
				}
				t = &repository.TopProductResult{
					ProductID:    p.ID,
					SKU:          p.SKU,
					Name:         p.Name,
					Category:     p.Category,
					SellingPrice: p.SellingPrice,
					TotalRevenue: decimal.Zero,
				}
				agg[it.ProductID] = t
			}
			t.TotalSold += it.Qty
			t.TotalRevenue = t.TotalRevenue.Add(it.Subtotal)
			t.TransactionCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]repository.TopProductResult, 0, len(agg))
	for _, t := range agg {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSold != out[j].TotalSold {
			return out[i].TotalSold > out[j].TotalSold
		}
		if !out[i].TotalRevenue.Equal(out[j].TotalRevenue) {
			return out[i].TotalRevenue.GreaterThan(out[j].TotalRevenue)
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LowStock productos con stock < threshold, de menor a mayor stock.
func (r *ReportRepo) LowStock(_ context.Context, threshold, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.b.read(func(st *state) error {
		for _, p := range st.products {
			if p.Stock < threshold {
				out = append(out, copyProduct(p))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stock != out[j].Stock {
			return out[i].Stock < out[j].Stock
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CatalogSummary totales del catálogo.
func (r *ReportRepo) CatalogSummary(_ context.Context) (repository.CatalogSummary, error) {
	s := repository.CatalogSummary{TotalStockValue: decimal.Zero}
	err := r.b.read(func(st *state) error {
		for _, p := range st.products {
			s.TotalProducts++
			s.TotalStockItems += p.Stock
			s.TotalStockValue = s.TotalStockValue.Add(p.StockValue())
		}
		return nil
	})
	return s, err
}
