package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	BuyPrice     *decimal.Decimal `json:"buyPrice"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	Stock        *int             `json:"stock"`
	ImagePath    string           `json:"imagePath"`
}

// UpdateProductRequest entrada para actualizar un producto.
// Un Stock distinto al actual se registra como movimiento IN u OUT.
type UpdateProductRequest struct {
	SKU          *string          `json:"sku"`
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	BuyPrice     *decimal.Decimal `json:"buyPrice"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	Stock        *int             `json:"stock"`
	ImagePath    *string          `json:"imagePath"`
}

// ProductListRequest filtros de GET /products.
type ProductListRequest struct {
	PageRequest
	Search   string `query:"search"`
	Category string `query:"category"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string           `json:"id"`
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	BuyPrice     *decimal.Decimal `json:"buyPrice"`
	SellingPrice decimal.Decimal  `json:"sellingPrice"`
	Stock        int              `json:"stock"`
	ImagePath    string           `json:"imagePath"`
	DateIn       *time.Time       `json:"dateIn"`
	DateOut      *time.Time       `json:"dateOut"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Pagination Pagination        `json:"pagination"`
}
