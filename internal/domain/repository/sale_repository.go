package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas. Limit <= 0 devuelve todas.
type SaleFilter struct {
	From, To *time.Time
	Limit    int
	Offset   int
}

// SaleRepository puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	// Create inserta la cabecera. InvoiceNo repetido devuelve domain.ErrDuplicate.
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	// GetByID devuelve la venta con sus líneas, o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List devuelve ventas (más recientes primero) con sus líneas y nombre del cajero.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, int, error)
}
