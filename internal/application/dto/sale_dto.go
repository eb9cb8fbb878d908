package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de la venta.
type SaleItemRequest struct {
	ProductID string          `json:"productId"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CheckoutRequest body para POST /sales.
type CheckoutRequest struct {
	Items         []SaleItemRequest `json:"items"`
	PaymentMethod string            `json:"paymentMethod"`
	PaidAmount    *decimal.Decimal  `json:"paidAmount"`
}

// SaleItemResponse línea de una venta.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Product   *ProductRef     `json:"product,omitempty"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNo     string             `json:"invoiceNo"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	PaymentMethod string             `json:"paymentMethod"`
	PaidAmount    *decimal.Decimal   `json:"paidAmount"`
	ChangeAmount  *decimal.Decimal   `json:"changeAmount"`
	CreatedBy     string             `json:"createdBy"`
	CreatedAt     time.Time          `json:"createdAt"`
	Items         []SaleItemResponse `json:"items"`
	User          *UserRef           `json:"user,omitempty"`
}

// SaleListRequest filtros de GET /sales.
type SaleListRequest struct {
	PageRequest
	FromDate string `query:"fromDate"`
	ToDate   string `query:"toDate"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Sales      []SaleResponse `json:"sales"`
	Pagination Pagination     `json:"pagination"`
}
