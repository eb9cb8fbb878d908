package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "CASH"
	PaymentTransfer = "TRANSFER"
)

// Sale venta completada. Inmutable después de crearse.
// PaidAmount y ChangeAmount solo existen en ventas CASH.
type Sale struct {
	ID            string
	InvoiceNo     string
	TotalAmount   decimal.Decimal
	PaymentMethod string
	PaidAmount    *decimal.Decimal
	ChangeAmount  *decimal.Decimal
	CreatedBy     string
	CreatedAt     time.Time
	Items         []*SaleItem

	UserName string // solo lectura
}

// SaleItem línea de una venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Qty       int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal

	ProductName string // solo lectura
	ProductSKU  string
}

// ItemCount total de unidades vendidas.
func (s *Sale) ItemCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Qty
	}
	return n
}

// IsValidPaymentMethod indica si m es CASH o TRANSFER.
func IsValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentTransfer
}
