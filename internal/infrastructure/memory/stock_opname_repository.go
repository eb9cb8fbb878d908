package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

var _ repository.StockOpnameRepository = (*StockOpnameRepo)(nil)

// StockOpnameRepo conteos físicos en memoria.
type StockOpnameRepo struct{ b *binding }

// Create guarda la cabecera del conteo.
func (r *StockOpnameRepo) Create(_ context.Context, o *entity.StockOpname) error {
	return r.b.write(OpOpnameCreate, func(st *state) error {
		if findOpname(st, o.ID) != nil {
			return fmt.Errorf("conteo %s: %w", o.ID, domain.ErrDuplicate)
		}
		c := *o
		c.Items = nil
		c.PerformerName = ""
		st.opnames = append(st.opnames, &c)
		return nil
	})
}

// CreateItem guarda una línea del conteo.
func (r *StockOpnameRepo) CreateItem(_ context.Context, it *entity.StockOpnameItem) error {
	return r.b.write(OpOpnameCreateItem, func(st *state) error {
		if findOpname(st, it.StockOpnameID) == nil {
			return &domain.NotFoundError{Entity: "stock opname", ID: it.StockOpnameID}
		}
		if _, ok := st.products[it.ProductID]; !ok {
			return domain.ProductNotFound(it.ProductID)
		}
		c := *it
		c.ProductName, c.ProductSKU = "", ""
		st.opnameItems = append(st.opnameItems, &c)
		return nil
	})
}

func findOpname(st *state, id string) *entity.StockOpname {
	for _, o := range st.opnames {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func hydrateOpname(st *state, o *entity.StockOpname) *entity.StockOpname {
	c := *o
	c.Items = make([]*entity.StockOpnameItem, 0)
	for _, it := range st.opnameItems {
		if it.StockOpnameID != o.ID {
			continue
		}
		ic := *it
		if p, ok := st.products[it.ProductID]; ok {
			ic.ProductName, ic.ProductSKU = p.Name, p.SKU
		}
		c.Items = append(c.Items, &ic)
	}
	if u, ok := st.users[o.PerformedBy]; ok {
		c.PerformerName = u.Name
	}
	return &c
}

// GetByID conteo con líneas o (nil, nil).
func (r *StockOpnameRepo) GetByID(_ context.Context, id string) (*entity.StockOpname, error) {
	var out *entity.StockOpname
	err := r.b.read(func(st *state) error {
		if o := findOpname(st, id); o != nil {
			out = hydrateOpname(st, o)
		}
		return nil
	})
	return out, err
}

// List conteos más recientes primero.
func (r *StockOpnameRepo) List(_ context.Context, filter repository.OpnameFilter) ([]*entity.StockOpname, int, error) {
	var all []*entity.StockOpname
	err := r.b.read(func(st *state) error {
		for _, o := range st.opnames {
			if filter.From != nil && o.Date.Before(*filter.From) {
				continue
			}
			if filter.To != nil && !o.Date.Before(*filter.To) {
				continue
			}
			all = append(all, hydrateOpname(st, o))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	newestFirst(all, func(o *entity.StockOpname) int64 { return o.Date.UnixNano() })
	from, to := page(len(all), filter.Limit, filter.Offset)
	return append(make([]*entity.StockOpname, 0, to-from), all[from:to]...), len(all), nil
}
