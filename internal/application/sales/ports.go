package sales

import (
	"context"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
)

// StoreInfo datos de la tienda impresos en el recibo.
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
}

// ReceiptPDFGenerator genera el recibo de una venta en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, store StoreInfo) ([]byte, error)
}
