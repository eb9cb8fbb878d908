package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de una venta con los datos de la tienda.
type ReceiptUseCase struct {
	query       *QueryUseCase
	settingRepo repository.SettingRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(query *QueryUseCase, settingRepo repository.SettingRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{query: query, settingRepo: settingRepo, generator: generator}
}

// DownloadReceipt devuelve (pdfBytes, filename). Venta inexistente: NotFoundError.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, saleID string) ([]byte, string, error) {
	sale, err := uc.query.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", err
	}

	store, err := uc.storeInfo(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: datos de tienda: %w", err)
	}

	pdf, err := uc.generator.GenerateReceiptPDF(ctx, sale, store)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("receipt-%s.pdf", sale.InvoiceNo), nil
}

func (uc *ReceiptUseCase) storeInfo(ctx context.Context) (StoreInfo, error) {
	all, err := uc.settingRepo.GetAll(ctx)
	if err != nil {
		return StoreInfo{}, err
	}
	info := StoreInfo{Name: "Kawok Vape Store"}
	for _, s := range all {
		switch s.Key {
		case entity.SettingStoreName:
			if s.Value != "" {
				info.Name = s.Value
			}
		case entity.SettingStoreAddress:
			info.Address = s.Value
		case entity.SettingStorePhone:
			info.Phone = s.Value
		}
	}
	return info, nil
}
