package sales

import (
	"context"

	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

// QueryUseCase lectura de ventas.
type QueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(saleRepo repository.SaleRepository) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo}
}

// GetByID obtiene una venta con sus líneas.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, &domain.NotFoundError{Entity: "venta", ID: id}
	}
	return s, nil
}

// List lista ventas paginadas (más recientes primero).
func (uc *QueryUseCase) List(ctx context.Context, in dto.SaleListRequest) (*dto.SaleListResponse, error) {
	page := in.PageRequest.Normalize(dto.DefaultLimit)
	from, to, err := dto.ParseDateRange(in.FromDate, in.ToDate)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.saleRepo.List(ctx, repository.SaleFilter{
		From: from, To: to, Limit: page.Limit, Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	return &dto.SaleListResponse{Sales: dto.FromSales(list), Pagination: dto.NewPagination(page, total)}, nil
}
