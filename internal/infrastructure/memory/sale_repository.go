package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct{ b *binding }

// Create guarda la cabecera. InvoiceNo repetido devuelve ErrDuplicate.
func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.b.write(OpSaleCreate, func(st *state) error {
		for _, existing := range st.sales {
			if existing.InvoiceNo == s.InvoiceNo {
				return fmt.Errorf("invoice %s: %w", s.InvoiceNo, domain.ErrDuplicate)
			}
			if existing.ID == s.ID {
				return fmt.Errorf("venta %s: %w", s.ID, domain.ErrDuplicate)
			}
		}
		c := *s
		c.Items = nil
		c.UserName = ""
		st.sales = append(st.sales, &c)
		return nil
	})
}

// CreateItem guarda una línea; la venta debe existir.
func (r *SaleRepo) CreateItem(_ context.Context, it *entity.SaleItem) error {
	return r.b.write(OpSaleCreateItem, func(st *state) error {
		if findSale(st, it.SaleID) == nil {
			return &domain.NotFoundError{Entity: "venta", ID: it.SaleID}
		}
		if _, ok := st.products[it.ProductID]; !ok {
			return domain.ProductNotFound(it.ProductID)
		}
		c := *it
		c.ProductName, c.ProductSKU = "", ""
		st.saleItems = append(st.saleItems, &c)
		return nil
	})
}

func findSale(st *state, id string) *entity.Sale {
	for _, s := range st.sales {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// hydrate copia la venta con sus líneas y nombres.
func hydrate(st *state, s *entity.Sale) *entity.Sale {
	c := *s
	c.Items = make([]*entity.SaleItem, 0)
	for _, it := range st.saleItems {
		if it.SaleID != s.ID {
			continue
		}
		ic := *it
		if p, ok := st.products[it.ProductID]; ok {
			ic.ProductName, ic.ProductSKU = p.Name, p.SKU
		}
		c.Items = append(c.Items, &ic)
	}
	sort.SliceStable(c.Items, func(i, j int) bool { return c.Items[i].ProductName < c.Items[j].ProductName })
	if u, ok := st.users[s.CreatedBy]; ok {
		c.UserName = u.Name
	}
	return &c
}

// GetByID venta con líneas o (nil, nil).
func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.b.read(func(st *state) error {
		if s := findSale(st, id); s != nil {
			out = hydrate(st, s)
		}
		return nil
	})
	return out, err
}

// List ventas filtradas, más recientes primero, con sus líneas.
func (r *SaleRepo) List(_ context.Context, filter repository.SaleFilter) ([]*entity.Sale, int, error) {
	var all []*entity.Sale
	err := r.b.read(func(st *state) error {
		for _, s := range st.sales {
			if filter.From != nil && s.CreatedAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && !s.CreatedAt.Before(*filter.To) {
				continue
			}
			all = append(all, hydrate(st, s))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	newestFirst(all, func(s *entity.Sale) int64 { return s.CreatedAt.UnixNano() })
	from, to := page(len(all), filter.Limit, filter.Offset)
	return append(make([]*entity.Sale, 0, to-from), all[from:to]...), len(all), nil
}
