package inventory

import (
	"context"

	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

// ReconcileUseCase compara el stock de un producto con la suma de sus movimientos.
type ReconcileUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) *ReconcileUseCase {
	return &ReconcileUseCase{productRepo: productRepo, movementRepo: movementRepo}
}

// Check devuelve stock, suma de movimientos y si coinciden.
func (uc *ReconcileUseCase) Check(ctx context.Context, productID string) (*dto.ReconciliationResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ProductNotFound(productID)
	}
	sum, err := uc.movementRepo.SumDelta(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.ReconciliationResponse{
		ProductID:   productID,
		Stock:       p.Stock,
		MovementSum: sum,
		Consistent:  sum == p.Stock,
	}, nil
}
