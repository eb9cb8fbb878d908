package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock solo cambia a través del motor de inventario; siempre es igual a la suma
// de los Delta de sus movimientos.
type Product struct {
	ID           string
	SKU          string // único
	Name         string
	Description  string
	Category     string
	BuyPrice     *decimal.Decimal // opcional
	SellingPrice decimal.Decimal
	Stock        int
	ImagePath    string
	DateIn       *time.Time // primera vez con stock
	DateOut      *time.Time // última salida
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockValue valor del stock a precio de venta.
func (p *Product) StockValue() decimal.Decimal {
	return p.SellingPrice.Mul(decimal.NewFromInt(int64(p.Stock)))
}
