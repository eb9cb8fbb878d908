package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ b *binding }

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func skuTaken(st *state, sku, exceptID string) bool {
	for _, p := range st.products {
		if p.SKU == sku && p.ID != exceptID {
			return true
		}
	}
	return false
}

// Create guarda una copia del producto. SKU repetido devuelve ErrDuplicate.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.b.write(OpProductCreate, func(st *state) error {
		if _, ok := st.products[product.ID]; ok {
			return fmt.Errorf("producto %s: %w", product.ID, domain.ErrDuplicate)
		}
		if skuTaken(st, product.SKU, "") {
			return fmt.Errorf("sku %s: %w", product.SKU, domain.ErrDuplicate)
		}
		if product.Stock < 0 {
			return fmt.Errorf("producto %s: %w", product.ID, domain.ErrInsufficientStock)
		}
		st.products[product.ID] = copyProduct(product)
		return nil
	})
}

func (r *ProductRepo) find(match func(*entity.Product) bool) (*entity.Product, error) {
	var out *entity.Product
	err := r.b.read(func(st *state) error {
		for _, p := range st.products {
			if match(p) {
				out = copyProduct(p)
				return nil
			}
		}
		return nil
	})
	return out, err
}

// GetByID devuelve una copia del producto o (nil, nil).
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.b.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = copyProduct(p)
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate igual que GetByID: las transacciones en memoria ya son exclusivas.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetBySKU busca por SKU exacto.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	return r.find(func(p *entity.Product) bool { return p.SKU == sku })
}

// Update reemplaza campos de catálogo; conserva stock y fechas guardados.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.b.write(OpProductUpdate, func(st *state) error {
		old, ok := st.products[product.ID]
		if !ok {
			return domain.ProductNotFound(product.ID)
		}
		if skuTaken(st, product.SKU, product.ID) {
			return fmt.Errorf("sku %s: %w", product.SKU, domain.ErrDuplicate)
		}
		c := copyProduct(product)
		c.Stock = old.Stock
		c.DateIn = old.DateIn
		c.DateOut = old.DateOut
		c.CreatedAt = old.CreatedAt
		st.products[product.ID] = c
		return nil
	})
}

// UpdateStock persiste stock y fechas. Stock negativo se rechaza como el CHECK de la tabla.
func (r *ProductRepo) UpdateStock(_ context.Context, product *entity.Product) error {
	return r.b.write(OpProductUpdateStock, func(st *state) error {
		old, ok := st.products[product.ID]
		if !ok {
			return domain.ProductNotFound(product.ID)
		}
		if product.Stock < 0 {
			return fmt.Errorf("producto %s: %w", product.ID, domain.ErrInsufficientStock)
		}
		c := copyProduct(old)
		c.Stock = product.Stock
		c.DateIn = product.DateIn
		c.DateOut = product.DateOut
		c.UpdatedAt = product.UpdatedAt
		st.products[product.ID] = c
		return nil
	})
}

// List filtra por búsqueda y categoría; ordena por creación descendente o por nombre.
func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var all []*entity.Product
	search := strings.ToLower(filter.Search)
	err := r.b.read(func(st *state) error {
		for _, p := range st.products {
			if filter.Category != "" && p.Category != filter.Category {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(p.Name), search) &&
				!strings.Contains(strings.ToLower(p.SKU), search) &&
				!strings.Contains(strings.ToLower(p.Description), search) {
				continue
			}
			all = append(all, copyProduct(p))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	if filter.Sort == repository.ProductSortName {
		sort.Slice(all, func(i, j int) bool {
			if all[i].Name != all[j].Name {
				return all[i].Name < all[j].Name
			}
			return all[i].ID < all[j].ID
		})
	} else {
		sort.Slice(all, func(i, j int) bool {
			if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].CreatedAt.After(all[j].CreatedAt)
			}
			return all[i].ID < all[j].ID
		})
	}
	from, to := page(len(all), filter.Limit, filter.Offset)
	return append(make([]*entity.Product, 0, to-from), all[from:to]...), len(all), nil
}

// Delete elimina el producto con sus movimientos y líneas de conteo.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.b.write(OpProductDelete, func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ProductNotFound(id)
		}
		for _, it := range st.saleItems {
			if it.ProductID == id {
				return fmt.Errorf("producto %s con ventas: %w", id, domain.ErrConflict)
			}
		}
		delete(st.products, id)
		movs := st.movements[:0:0]
		for _, m := range st.movements {
			if m.ProductID != id {
				movs = append(movs, m)
			}
		}
		st.movements = movs
		items := st.opnameItems[:0:0]
		for _, it := range st.opnameItems {
			if it.ProductID != id {
				items = append(items, it)
			}
		}
		st.opnameItems = items
		return nil
	})
}

// HasSales indica si el producto aparece en alguna venta.
func (r *ProductRepo) HasSales(_ context.Context, id string) (bool, error) {
	found := false
	err := r.b.read(func(st *state) error {
		for _, it := range st.saleItems {
			if it.ProductID == id {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}
