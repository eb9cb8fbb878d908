package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN     = "IN"
	MovementTypeOUT    = "OUT"
	MovementTypeADJUST = "ADJUST"
)

// Tipos de referencia de un movimiento.
const (
	ReferenceSale        = "SALE"
	ReferenceStockOpname = "STOCK_OPNAME"
)

// StockMovement registro inmutable de un cambio de stock.
// Qty siempre es positivo; Delta es el cambio con signo aplicado a Product.Stock.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string // IN, OUT, ADJUST
	Qty           int
	Delta         int
	Note          string
	ReferenceType string
	ReferenceID   string
	CreatedBy     string // UserID
	CreatedAt     time.Time

	// Solo lectura (joins)
	ProductName string
	ProductSKU  string
	UserName    string
}

// IsValidMovementType indica si t es IN, OUT o ADJUST.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUST:
		return true
	}
	return false
}
