package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/kawok-pos/internal/application/inventory"
	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/inventory"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
	"github.com/jhoicas/kawok-pos/pkg/money"
)

// ProductUseCase casos de uso del catálogo. El stock inicial y los cambios de stock
// desde la edición se registran como movimientos dentro de la misma transacción.
type ProductUseCase struct {
	txRunner appinventory.TxRunner
	repo     repository.ProductRepository
	now      appinventory.Clock
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner appinventory.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, now: time.Now}
}

// Create crea el producto; con stock > 0 agrega el movimiento IN "Stok awal".
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*entity.Product, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	v := &domain.ValidationError{}
	if in.SKU == "" {
		v.Add("sku", "requerido")
	}
	if in.Name == "" {
		v.Add("name", "requerido")
	}
	if in.SellingPrice == nil {
		v.Add("sellingPrice", "requerido")
	}
	if in.Stock == nil {
		v.Add("stock", "requerido")
	}
	checkProductNumbers(v, in.SellingPrice, in.BuyPrice, in.Stock)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: SKU %s ya existe", domain.ErrDuplicate, in.SKU)
	}

	now := uc.now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		BuyPrice:     in.BuyPrice,
		SellingPrice: *in.SellingPrice,
		ImagePath:    in.ImagePath,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		product.Stock, product.DateIn = 0, nil
		if err := r.Products.Create(ctx, product); err != nil {
			return err
		}
		if *in.Stock == 0 {
			return nil
		}
		_, err := appinventory.ApplyToLocked(ctx, r, product, appinventory.StockChange{
			ProductID: product.ID,
			Type:      entity.MovementTypeIN,
			Qty:       *in.Stock,
			Delta:     *in.Stock,
			Note:      "Stok awal",
			UserID:    userID,
			At:        now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto; NotFoundError si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ProductNotFound(id)
	}
	return p, nil
}

// List lista productos con búsqueda, categoría y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	page := in.PageRequest.Normalize(dto.DefaultLimit)
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		Search:   in.Search,
		Category: in.Category,
		Limit:    page.Limit,
		Offset:   page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Products:   dto.FromProducts(list),
		Pagination: dto.NewPagination(page, total),
	}, nil
}

// Update modifica los campos de catálogo. Si Stock cambia, se registra un movimiento IN u OUT
// por la diferencia con la fila bloqueada.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	v := &domain.ValidationError{}
	if in.SKU != nil && *in.SKU == "" {
		v.Add("sku", "no puede estar vacío")
	}
	if in.Name != nil && *in.Name == "" {
		v.Add("name", "no puede estar vacío")
	}
	checkProductNumbers(v, in.SellingPrice, in.BuyPrice, in.Stock)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	if in.SKU != nil {
		other, err := uc.repo.GetBySKU(ctx, *in.SKU)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, fmt.Errorf("%w: SKU %s ya está en uso", domain.ErrDuplicate, *in.SKU)
		}
	}

	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		locked, err := appinventory.LockProducts(ctx, r.Products, []string{id})
		if err != nil {
			return err
		}
		p := locked[id]
		now := uc.now()
		applyCatalogChanges(p, in)
		p.UpdatedAt = now
		if err := r.Products.Update(ctx, p); err != nil {
			return err
		}

		if in.Stock != nil && *in.Stock != p.Stock {
			diff := *in.Stock - p.Stock
			movType := entity.MovementTypeIN
			qty := diff
			if diff < 0 {
				movType = entity.MovementTypeOUT
				qty = -diff
			}
			if _, err := appinventory.ApplyToLocked(ctx, r, p, appinventory.StockChange{
				ProductID: p.ID,
				Type:      movType,
				Qty:       qty,
				Delta:     diff,
				Note:      fmt.Sprintf("Penyesuaian stok dari %d menjadi %d", p.Stock, *in.Stock),
				UserID:    userID,
				At:        now,
			}); err != nil {
				return err
			}
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// checkProductNumbers valida precios y stock presentes (nil = no enviado).
func checkProductNumbers(v *domain.ValidationError, selling, buy *decimal.Decimal, stock *int) {
	prices := []struct {
		field string
		value *decimal.Decimal
	}{{"sellingPrice", selling}, {"buyPrice", buy}}
	for _, pr := range prices {
		switch {
		case pr.value == nil:
		case pr.value.IsNegative():
			v.Add(pr.field, "no puede ser negativo")
		case !money.ValidAmount(*pr.value):
			v.Add(pr.field, "máximo 2 decimales y menor a 1.000.000.000.000")
		}
	}
	switch {
	case stock == nil:
	case *stock < 0:
		v.Add("stock", "no puede ser negativo")
	case !inventory.ValidQuantity(*stock):
		v.Add("stock", fmt.Sprintf("no puede superar %d", inventory.MaxQuantity))
	}
}

func applyCatalogChanges(p *entity.Product, in dto.UpdateProductRequest) {
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.BuyPrice != nil {
		bp := *in.BuyPrice
		p.BuyPrice = &bp
	}
	if in.SellingPrice != nil {
		p.SellingPrice = *in.SellingPrice
	}
	if in.ImagePath != nil {
		p.ImagePath = *in.ImagePath
	}
}

// Delete elimina el producto si ninguna venta lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		if _, err := appinventory.LockProducts(ctx, r.Products, []string{id}); err != nil {
			return err
		}
		hasSales, err := r.Products.HasSales(ctx, id)
		if err != nil {
			return err
		}
		if hasSales {
			return fmt.Errorf("%w: el producto tiene ventas registradas", domain.ErrConflict)
		}
		return r.Products.Delete(ctx, id)
	})
}
