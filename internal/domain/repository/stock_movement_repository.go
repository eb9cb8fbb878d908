package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos. Limit <= 0 devuelve todos.
type MovementFilter struct {
	Type      string
	ProductID string
	From, To  *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository puerto del registro de movimientos (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, int, error)
	// SumDelta suma con signo de todos los movimientos del producto.
	SumDelta(ctx context.Context, productID string) (int, error)
}
