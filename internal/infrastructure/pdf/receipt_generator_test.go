package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kawok-pos/internal/application/sales"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
)

func TestGenerateReceiptPDF(t *testing.T) {
	paid := decimal.NewFromInt(200000)
	change := decimal.NewFromInt(25000)
	sale := &entity.Sale{
		ID:            "s-1",
		InvoiceNo:     "KAWOK-20260101-0001",
		TotalAmount:   decimal.NewFromInt(175000),
		PaymentMethod: entity.PaymentCash,
		PaidAmount:    &paid,
		ChangeAmount:  &change,
		CreatedBy:     "u-1",
		CreatedAt:     time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
		UserName:      "Administrator",
		Items: []*entity.SaleItem{
			{ProductID: "p-1", ProductName: "Liquid Mango", Qty: 2, UnitPrice: decimal.NewFromInt(50000), Subtotal: decimal.NewFromInt(100000)},
			{ProductID: "p-2", ProductName: "Coil Mesh", Qty: 3, UnitPrice: decimal.NewFromInt(25000), Subtotal: decimal.NewFromInt(75000)},
		},
	}

	out, err := NewReceiptGenerator().GenerateReceiptPDF(context.Background(), sale, sales.StoreInfo{
		Name: "Kawok Vape Store", Address: "Jl. Contoh 1", Phone: "0812",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
