package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
)

// OpnameFilter filtros del listado de conteos.
type OpnameFilter struct {
	From, To *time.Time
	Limit    int
	Offset   int
}

// StockOpnameRepository puerto de persistencia de conteos físicos.
type StockOpnameRepository interface {
	Create(ctx context.Context, opname *entity.StockOpname) error
	CreateItem(ctx context.Context, item *entity.StockOpnameItem) error
	GetByID(ctx context.Context, id string) (*entity.StockOpname, error)
	List(ctx context.Context, filter OpnameFilter) ([]*entity.StockOpname, int, error)
}
