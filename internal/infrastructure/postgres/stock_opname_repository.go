package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

var _ repository.StockOpnameRepository = (*StockOpnameRepo)(nil)

// StockOpnameRepo conteos físicos sobre PostgreSQL.
type StockOpnameRepo struct {
	q Querier
}

// NewStockOpnameRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockOpnameRepository(q Querier) *StockOpnameRepo {
	return &StockOpnameRepo{q: q}
}

// Create inserta la cabecera del conteo.
func (r *StockOpnameRepo) Create(ctx context.Context, o *entity.StockOpname) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_opnames (id, performed_by, date, adjusted) VALUES ($1, $2, $3, $4)`,
		o.ID, o.PerformedBy, o.Date, o.Adjusted,
	)
	if err != nil {
		return fmt.Errorf("insert stock opname: %w", err)
	}
	return nil
}

// CreateItem inserta una línea del conteo.
func (r *StockOpnameRepo) CreateItem(ctx context.Context, it *entity.StockOpnameItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_opname_items (id, stock_opname_id, product_id, counted_qty, system_qty, diff)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		it.ID, it.StockOpnameID, it.ProductID, it.CountedQty, it.SystemQty, it.Diff,
	)
	if err != nil {
		return fmt.Errorf("insert stock opname item: %w", err)
	}
	return nil
}

const opnameSelect = `
	SELECT o.id, o.performed_by, o.date, o.adjusted, COALESCE(u.name, '')
	FROM stock_opnames o
	LEFT JOIN users u ON u.id = o.performed_by`

func scanOpname(row rowScanner) (*entity.StockOpname, error) {
	var o entity.StockOpname
	if err := row.Scan(&o.ID, &o.PerformedBy, &o.Date, &o.Adjusted, &o.PerformerName); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID obtiene el conteo con sus líneas.
func (r *StockOpnameRepo) GetByID(ctx context.Context, id string) (*entity.StockOpname, error) {
	o, err := scanOpname(r.q.QueryRow(ctx, opnameSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock opname: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.StockOpname{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List conteos más recientes primero, con sus líneas.
func (r *StockOpnameRepo) List(ctx context.Context, filter repository.OpnameFilter) ([]*entity.StockOpname, int, error) {
	w := &whereBuilder{}
	if filter.From != nil {
		w.add(`o.date >= ?`, *filter.From)
	}
	if filter.To != nil {
		w.add(`o.date < ?`, *filter.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_opnames o`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock opnames: %w", err)
	}

	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, opnameSelect+w.sql()+` ORDER BY o.date DESC, o.id`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock opnames: %w", err)
	}
	list := make([]*entity.StockOpname, 0)
	for rows.Next() {
		o, err := scanOpname(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan stock opname: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *StockOpnameRepo) loadItems(ctx context.Context, list []*entity.StockOpname) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, 0, len(list))
	byID := make(map[string]*entity.StockOpname, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
		byID[o.ID] = o
		o.Items = make([]*entity.StockOpnameItem, 0)
	}
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.stock_opname_id, i.product_id, i.counted_qty, i.system_qty, i.diff, p.name, p.sku
		FROM stock_opname_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.stock_opname_id = ANY($1)
		ORDER BY i.stock_opname_id, p.name, i.id`, ids)
	if err != nil {
		return fmt.Errorf("list stock opname items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.StockOpnameItem
		if err := rows.Scan(&it.ID, &it.StockOpnameID, &it.ProductID, &it.CountedQty, &it.SystemQty, &it.Diff,
			&it.ProductName, &it.ProductSKU); err != nil {
			return fmt.Errorf("scan stock opname item: %w", err)
		}
		if o := byID[it.StockOpnameID]; o != nil {
			o.Items = append(o.Items, &it)
		}
	}
	return rows.Err()
}
