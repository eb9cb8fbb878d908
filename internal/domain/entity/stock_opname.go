package entity

import "time"

// StockOpname sesión de conteo físico.
type StockOpname struct {
	ID          string
	PerformedBy string
	Date        time.Time
	Adjusted    bool // confirmAdjustment al crear
	Items       []*StockOpnameItem

	PerformerName string // solo lectura
}

// StockOpnameItem conteo de un producto; SystemQty es el stock al momento del conteo.
type StockOpnameItem struct {
	ID            string
	StockOpnameID string
	ProductID     string
	CountedQty    int
	SystemQty     int
	Diff          int // CountedQty - SystemQty

	ProductName string // solo lectura
	ProductSKU  string
}
