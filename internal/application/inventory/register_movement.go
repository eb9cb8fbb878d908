package inventory

import (
	"context"

	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	mov, err := uc.RegisterMovement(ctx, MovementInput{
		UserID:        userID,
		ProductID:     in.ProductID,
		Type:          in.Type,
		Qty:           in.Qty,
		Note:          in.Note,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromMovement(mov)
	return &out, nil
}

// ListFromRequest adapta los filtros HTTP al listado de movimientos.
func (uc *RegisterMovementUseCase) ListFromRequest(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	page := in.PageRequest.Normalize(20)
	from, to, err := dto.ParseDateRange(in.FromDate, in.ToDate)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.List(ctx, repository.MovementFilter{
		Type:      in.Type,
		ProductID: in.ProductID,
		From:      from,
		To:        to,
		Limit:     page.Limit,
		Offset:    page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Movements:  dto.FromMovements(list),
		Pagination: dto.NewPagination(page, total),
	}, nil
}
