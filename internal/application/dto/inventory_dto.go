package dto

import "time"

// RegisterMovementRequest body para POST /stock-movements.
type RegisterMovementRequest struct {
	ProductID     string `json:"productId"`
	Type          string `json:"type"`
	Qty           int    `json:"qty"`
	Note          string `json:"note"`
	ReferenceType string `json:"referenceType"`
	ReferenceID   string `json:"referenceId"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID            string      `json:"id"`
	ProductID     string      `json:"productId"`
	Type          string      `json:"type"`
	Qty           int         `json:"qty"`
	Delta         int         `json:"delta"`
	Note          string      `json:"note,omitempty"`
	ReferenceType string      `json:"referenceType,omitempty"`
	ReferenceID   string      `json:"referenceId,omitempty"`
	CreatedBy     string      `json:"createdBy"`
	CreatedAt     time.Time   `json:"createdAt"`
	Product       *ProductRef `json:"product,omitempty"`
	User          *UserRef    `json:"user,omitempty"`
}

// ProductRef referencia corta a un producto.
type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// UserRef referencia corta a un usuario.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// MovementListRequest filtros de GET /stock-movements.
type MovementListRequest struct {
	PageRequest
	Type      string `query:"type"`
	ProductID string `query:"productId"`
	FromDate  string `query:"fromDate"`
	ToDate    string `query:"toDate"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Movements  []MovementResponse `json:"movements"`
	Pagination Pagination         `json:"pagination"`
}

// OpnameItemRequest conteo de un producto. CountedQty es puntero para detectar ausencia.
type OpnameItemRequest struct {
	ProductID  string `json:"productId"`
	CountedQty *int   `json:"countedQty"`
}

// CreateOpnameRequest body para POST /stock-opname.
type CreateOpnameRequest struct {
	Items             []OpnameItemRequest `json:"items"`
	ConfirmAdjustment bool                `json:"confirmAdjustment"`
}

// OpnameItemResponse línea de un conteo.
type OpnameItemResponse struct {
	ID         string      `json:"id"`
	ProductID  string      `json:"productId"`
	CountedQty int         `json:"countedQty"`
	SystemQty  int         `json:"systemQty"`
	Diff       int         `json:"diff"`
	Product    *ProductRef `json:"product,omitempty"`
}

// OpnameResponse salida de un conteo.
type OpnameResponse struct {
	ID          string               `json:"id"`
	PerformedBy string               `json:"performedBy"`
	Date        time.Time            `json:"date"`
	Adjusted    bool                 `json:"adjusted"`
	Items       []OpnameItemResponse `json:"items"`
	User        *UserRef             `json:"user,omitempty"`
}

// OpnameListRequest filtros de GET /stock-opname.
type OpnameListRequest struct {
	PageRequest
	FromDate string `query:"fromDate"`
	ToDate   string `query:"toDate"`
}

// OpnameListResponse lista paginada de conteos.
type OpnameListResponse struct {
	StockOpnames []OpnameResponse `json:"stockOpnames"`
	Pagination   Pagination       `json:"pagination"`
}

// ReconciliationResponse comparación stock vs suma de movimientos.
type ReconciliationResponse struct {
	ProductID   string `json:"productId"`
	Stock       int    `json:"stock"`
	MovementSum int    `json:"movementSum"`
	Consistent  bool   `json:"consistent"`
}
