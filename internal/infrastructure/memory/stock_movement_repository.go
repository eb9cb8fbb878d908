package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo movimientos en memoria (solo inserción).
type StockMovementRepo struct{ b *binding }

// Create agrega el movimiento. Exige producto existente y Qty/Delta coherentes.
func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.b.write(OpMovementCreate, func(st *state) error {
		if _, ok := st.products[m.ProductID]; !ok {
			return domain.ProductNotFound(m.ProductID)
		}
		if m.Qty <= 0 || (m.Delta != m.Qty && m.Delta != -m.Qty) {
			return fmt.Errorf("movimiento inválido: qty=%d delta=%d: %w", m.Qty, m.Delta, domain.ErrInvalidInput)
		}
		c := *m
		c.ProductName, c.ProductSKU, c.UserName = "", "", ""
		st.movements = append(st.movements, &c)
		return nil
	})
}

// List movimientos filtrados, más recientes primero, con nombre de producto y usuario.
func (r *StockMovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	var all []*entity.StockMovement
	err := r.b.read(func(st *state) error {
		for _, m := range st.movements {
			if filter.Type != "" && m.Type != filter.Type {
				continue
			}
			if filter.ProductID != "" && m.ProductID != filter.ProductID {
				continue
			}
			if filter.From != nil && m.CreatedAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && !m.CreatedAt.Before(*filter.To) {
				continue
			}
			c := *m
			if p, ok := st.products[m.ProductID]; ok {
				c.ProductName, c.ProductSKU = p.Name, p.SKU
			}
			if u, ok := st.users[m.CreatedBy]; ok {
				c.UserName = u.Name
			}
			all = append(all, &c)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	newestFirst(all, func(m *entity.StockMovement) int64 { return m.CreatedAt.UnixNano() })
	from, to := page(len(all), filter.Limit, filter.Offset)
	return append(make([]*entity.StockMovement, 0, to-from), all[from:to]...), len(all), nil
}

// SumDelta suma con signo de los movimientos del producto.
func (r *StockMovementRepo) SumDelta(_ context.Context, productID string) (int, error) {
	sum := 0
	err := r.b.read(func(st *state) error {
		for _, m := range st.movements {
			if m.ProductID == productID {
				sum += m.Delta
			}
		}
		return nil
	})
	return sum, err
}
