package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo registro de movimientos sobre PostgreSQL. Solo inserción y lectura.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, qty, delta, note, reference_type, reference_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.Qty, m.Delta, nullIfEmpty(m.Note),
		nullIfEmpty(m.ReferenceType), nullIfEmpty(m.ReferenceID), m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List movimientos filtrados, más recientes primero, con nombre de producto y usuario.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	w := &whereBuilder{}
	if filter.Type != "" {
		w.add(`m.type = ?`, filter.Type)
	}
	if filter.ProductID != "" {
		w.add(`m.product_id = ?`, filter.ProductID)
	}
	if filter.From != nil {
		w.add(`m.created_at >= ?`, *filter.From)
	}
	if filter.To != nil {
		w.add(`m.created_at < ?`, *filter.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements m`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	limit, args := w.page(filter.Limit, filter.Offset)
	query := `
		SELECT m.id, m.product_id, m.type, m.qty, m.delta, m.note, m.reference_type, m.reference_id,
			m.created_by, m.created_at, p.name, p.sku, COALESCE(u.name, '')
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN users u ON u.id = m.created_by` + w.sql() + `
		ORDER BY m.created_at DESC, m.id` + limit
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		var note, refType, refID *string
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Type, &m.Qty, &m.Delta, &note, &refType, &refID,
			&m.CreatedBy, &m.CreatedAt, &m.ProductName, &m.ProductSKU, &m.UserName,
		); err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		m.Note = emptyIfNull(note)
		m.ReferenceType = emptyIfNull(refType)
		m.ReferenceID = emptyIfNull(refID)
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

// SumDelta suma con signo de todos los movimientos del producto.
func (r *StockMovementRepo) SumDelta(ctx context.Context, productID string) (int, error) {
	var sum int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(delta), 0) FROM stock_movements WHERE product_id = $1`, productID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return sum, nil
}
