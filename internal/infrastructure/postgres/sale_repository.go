package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y líneas de venta sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera. invoice_no repetido devuelve ErrDuplicate.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, invoice_no, total_amount, payment_method, paid_amount, change_amount, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.InvoiceNo, s.TotalAmount, s.PaymentMethod, s.PaidAmount, s.ChangeAmount, s.CreatedBy, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice %s: %w", s.InvoiceNo, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de venta.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sale_items (id, sale_id, product_id, qty, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		it.ID, it.SaleID, it.ProductID, it.Qty, it.UnitPrice, it.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

const saleSelect = `
	SELECT s.id, s.invoice_no, s.total_amount, s.payment_method, s.paid_amount, s.change_amount,
		s.created_by, s.created_at, COALESCE(u.name, '')
	FROM sales s
	LEFT JOIN users u ON u.id = s.created_by`

func scanSale(row rowScanner) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(
		&s.ID, &s.InvoiceNo, &s.TotalAmount, &s.PaymentMethod, &s.PaidAmount, &s.ChangeAmount,
		&s.CreatedBy, &s.CreatedAt, &s.UserName,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List ventas filtradas por fecha, más recientes primero, con sus líneas.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, int, error) {
	w := &whereBuilder{}
	if filter.From != nil {
		w.add(`s.created_at >= ?`, *filter.From)
	}
	if filter.To != nil {
		w.add(`s.created_at < ?`, *filter.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales s`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, saleSelect+w.sql()+` ORDER BY s.created_at DESC, s.id`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
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

// loadItems carga las líneas de todas las ventas en una sola consulta.
func (r *SaleRepo) loadItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, 0, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
		byID[s.ID] = s
		s.Items = make([]*entity.SaleItem, 0)
	}

	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.sale_id, i.product_id, i.qty, i.unit_price, i.subtotal, p.name, p.sku
		FROM sale_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.sale_id = ANY($1)
		ORDER BY i.sale_id, p.name, i.id`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Qty, &it.UnitPrice, &it.Subtotal,
			&it.ProductName, &it.ProductSKU); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if s := byID[it.SaleID]; s != nil {
			s.Items = append(s.Items, &it)
		}
	}
	return rows.Err()
}
