package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/inventory"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos manuales de stock (IN, OUT, ADJUST)
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	now          Clock
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		now:          time.Now,
	}
}

// MovementInput entrada para registrar un movimiento manual.
type MovementInput struct {
	UserID        string
	ProductID     string
	Type          string
	Qty           int
	Note          string
	ReferenceType string
	ReferenceID   string
}

// RegisterMovement valida, verifica el producto fuera de la tx y luego, dentro de la tx,
// bloquea la fila, revalida el stock para OUT, aplica el delta y guarda el movimiento.
// ADJUST manual siempre suma (el ajuste absoluto es propio del stock opname).
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if in.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	v := &domain.ValidationError{}
	if in.ProductID == "" {
		v.Add("productId", "requerido")
	}
	if !entity.IsValidMovementType(in.Type) {
		v.Add("type", "debe ser IN, OUT o ADJUST")
	}
	switch {
	case in.Qty <= 0:
		v.Add("qty", "debe ser mayor a 0")
	case !inventory.ValidQuantity(in.Qty):
		v.Add("qty", fmt.Sprintf("no puede superar %d", inventory.MaxQuantity))
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	// Pre-check (solo lectura) para responder rápido; la verificación definitiva es dentro de la tx
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ProductNotFound(in.ProductID)
	}
	if in.Type == entity.MovementTypeOUT {
		if err := inventory.CheckSufficient(product, in.Qty); err != nil {
			return nil, err
		}
	}

	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		m, err := ApplyInTx(ctx, r, StockChange{
			ProductID:     in.ProductID,
			Type:          in.Type,
			Qty:           in.Qty,
			Delta:         inventory.SignedDelta(in.Type, in.Qty),
			Note:          in.Note,
			ReferenceType: in.ReferenceType,
			ReferenceID:   in.ReferenceID,
			UserID:        in.UserID,
			At:            uc.now(),
		})
		mov = m
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// List lista movimientos con filtros y total para paginar.
func (uc *RegisterMovementUseCase) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	if filter.Type != "" && !entity.IsValidMovementType(filter.Type) {
		return nil, 0, domain.NewValidationError("type", "debe ser IN, OUT o ADJUST")
	}
	return uc.movementRepo.List(ctx, filter)
}

// StockChange cambio de stock a aplicar dentro de una transacción.
// Qty es la magnitud registrada en el movimiento; Delta el cambio con signo sobre el stock.
type StockChange struct {
	ProductID     string
	Type          string
	Qty           int
	Delta         int
	Note          string
	ReferenceType string
	ReferenceID   string
	UserID        string
	At            time.Time
}

// LockProducts bloquea los productos en orden ascendente de ID (SELECT FOR UPDATE).
// Devuelve NotFoundError con el ID del primer producto inexistente.
func LockProducts(ctx context.Context, products repository.ProductRepository, ids []string) (map[string]*entity.Product, error) {
	locked := make(map[string]*entity.Product, len(ids))
	for _, id := range inventory.LockOrder(ids) {
		p, err := products.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ProductNotFound(id)
		}
		locked[id] = p
	}
	return locked, nil
}

// ApplyInTx bloquea un solo producto y le aplica el cambio.
func ApplyInTx(ctx context.Context, r repository.TxRepos, ch StockChange) (*entity.StockMovement, error) {
	locked, err := LockProducts(ctx, r.Products, []string{ch.ProductID})
	if err != nil {
		return nil, err
	}
	return ApplyToLocked(ctx, r, locked[ch.ProductID], ch)
}

// ApplyToLocked aplica el cambio a un producto ya bloqueado en la tx actual:
// verifica que el stock no quede negativo, persiste stock y fechas, y agrega el movimiento.
// Modifica p en memoria para que líneas repetidas vean el stock actualizado.
func ApplyToLocked(ctx context.Context, r repository.TxRepos, p *entity.Product, ch StockChange) (*entity.StockMovement, error) {
	if ch.Qty <= 0 || (ch.Delta != ch.Qty && ch.Delta != -ch.Qty) {
		return nil, fmt.Errorf("cambio de stock inconsistente: qty=%d delta=%d", ch.Qty, ch.Delta)
	}
	if ch.Delta < 0 {
		if err := inventory.CheckSufficient(p, -ch.Delta); err != nil {
			return nil, err
		}
	}
	if err := inventory.CheckCapacity(p, ch.Delta); err != nil {
		return nil, err
	}

	at := ch.At
	p.Stock += ch.Delta
	if ch.Type == entity.MovementTypeOUT {
		p.DateOut = &at
	}
	if ch.Delta > 0 && p.DateIn == nil {
		p.DateIn = &at
	}
	p.UpdatedAt = at
	if err := r.Products.UpdateStock(ctx, p); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     p.ID,
		Type:          ch.Type,
		Qty:           ch.Qty,
		Delta:         ch.Delta,
		Note:          ch.Note,
		ReferenceType: ch.ReferenceType,
		ReferenceID:   ch.ReferenceID,
		CreatedBy:     ch.UserID,
		CreatedAt:     at,
	}
	if err := r.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	mov.ProductName = p.Name
	mov.ProductSKU = p.SKU
	return mov, nil
}
