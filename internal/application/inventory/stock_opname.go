package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/inventory"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

// StockOpnameUseCase registra conteos físicos y, si se confirma, ajusta el stock al valor contado.
type StockOpnameUseCase struct {
	txRunner   TxRunner
	opnameRepo repository.StockOpnameRepository
	now        Clock
}

// NewStockOpnameUseCase construye el caso de uso.
func NewStockOpnameUseCase(txRunner TxRunner, opnameRepo repository.StockOpnameRepository) *StockOpnameUseCase {
	return &StockOpnameUseCase{txRunner: txRunner, opnameRepo: opnameRepo, now: time.Now}
}

// Create valida la petición y en una sola transacción: crea la cabecera, toma el stock
// actual de cada producto (bloqueado) como SystemQty, guarda cada línea y, con
// ConfirmAdjustment y Diff != 0, agrega un movimiento ADJUST de |Diff| dejando Stock = CountedQty.
// Un producto inexistente aborta todo el conteo.
func (uc *StockOpnameUseCase) Create(ctx context.Context, userID string, in dto.CreateOpnameRequest) (*entity.StockOpname, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validateOpname(in); err != nil {
		return nil, err
	}

	now := uc.now()
	opname := &entity.StockOpname{
		ID:          uuid.New().String(),
		PerformedBy: userID,
		Date:        now,
		Adjusted:    in.ConfirmAdjustment,
	}

	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		// reinicio por si el TxRunner reintenta
		opname.Items = nil
		if err := r.Opnames.Create(ctx, opname); err != nil {
			return err
		}

		ids := make([]string, 0, len(in.Items))
		for _, it := range in.Items {
			ids = append(ids, it.ProductID)
		}
		locked, err := LockProducts(ctx, r.Products, ids)
		if err != nil {
			return err
		}

		for _, it := range in.Items {
			p := locked[it.ProductID]
			counted := *it.CountedQty
			item := &entity.StockOpnameItem{
				ID:            uuid.New().String(),
				StockOpnameID: opname.ID,
				ProductID:     p.ID,
				CountedQty:    counted,
				SystemQty:     p.Stock,
				Diff:          counted - p.Stock,
				ProductName:   p.Name,
				ProductSKU:    p.SKU,
			}
			if err := r.Opnames.CreateItem(ctx, item); err != nil {
				return err
			}
			opname.Items = append(opname.Items, item)

			if !in.ConfirmAdjustment || item.Diff == 0 {
				continue
			}
			if _, err := ApplyToLocked(ctx, r, p, StockChange{
				ProductID:     p.ID,
				Type:          entity.MovementTypeADJUST,
				Qty:           abs(item.Diff),
				Delta:         item.Diff,
				Note:          fmt.Sprintf("Stock opname adjustment - Opname #%s", opname.ID),
				ReferenceType: entity.ReferenceStockOpname,
				ReferenceID:   opname.ID,
				UserID:        userID,
				At:            now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return opname, nil
}

func validateOpname(in dto.CreateOpnameRequest) error {
	v := &domain.ValidationError{}
	if len(in.Items) == 0 {
		v.Add("items", "requerido y no puede estar vacío")
	}
	for i, it := range in.Items {
		if it.ProductID == "" {
			v.Add(fmt.Sprintf("items[%d].productId", i), "requerido")
		}
		switch {
		case it.CountedQty == nil:
			v.Add(fmt.Sprintf("items[%d].countedQty", i), "requerido")
		case *it.CountedQty < 0:
			v.Add(fmt.Sprintf("items[%d].countedQty", i), "no puede ser negativo")
		case !inventory.ValidQuantity(*it.CountedQty):
			v.Add(fmt.Sprintf("items[%d].countedQty", i), fmt.Sprintf("no puede superar %d", inventory.MaxQuantity))
		}
	}
	return v.OrNil()
}

// GetByID obtiene un conteo con sus líneas.
func (uc *StockOpnameUseCase) GetByID(ctx context.Context, id string) (*entity.StockOpname, error) {
	o, err := uc.opnameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &domain.NotFoundError{Entity: "stock opname", ID: id}
	}
	return o, nil
}

// ListFromRequest lista conteos paginados.
func (uc *StockOpnameUseCase) ListFromRequest(ctx context.Context, in dto.OpnameListRequest) (*dto.OpnameListResponse, error) {
	page := in.PageRequest.Normalize(dto.DefaultLimit)
	from, to, err := dto.ParseDateRange(in.FromDate, in.ToDate)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.opnameRepo.List(ctx, repository.OpnameFilter{
		From: from, To: to, Limit: page.Limit, Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.OpnameResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.FromOpname(o))
	}
	return &dto.OpnameListResponse{StockOpnames: out, Pagination: dto.NewPagination(page, total)}, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
