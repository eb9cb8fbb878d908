package repository

import (
	"context"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
)

// Orden de listado de productos.
const (
	ProductSortNewest = ""     // created_at DESC
	ProductSortName   = "name" // name ASC
)

// ProductFilter filtros del listado de productos. Limit <= 0 devuelve todos.
type ProductFilter struct {
	Search   string // nombre, SKU o descripción (sin distinguir mayúsculas)
	Category string
	Sort     string
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update modifica solo los campos de catálogo; el stock va por UpdateStock.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock persiste Stock, DateIn y DateOut.
	UpdateStock(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) error
	HasSales(ctx context.Context, id string) (bool, error)
}
