package sales

import (
	"context"
	"errors"
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

// maxInvoiceAttempts intentos ante colisión de número de factura.
const maxInvoiceAttempts = 2

// CheckoutUseCase crea una venta y descuenta el inventario en una sola transacción.
type CheckoutUseCase struct {
	txRunner    appinventory.TxRunner
	productRepo repository.ProductRepository
	invoices    InvoiceNumberGenerator
	now         appinventory.Clock
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(
	txRunner appinventory.TxRunner,
	productRepo repository.ProductRepository,
	invoices InvoiceNumberGenerator,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		invoices:    invoices,
		now:         time.Now,
	}
}

// Checkout valida la venta, verifica productos y stock (fuera de la tx, solo lectura) y luego,
// dentro de la tx: bloquea los productos, revalida el stock, crea la venta con sus líneas,
// descuenta stock y registra un movimiento OUT por línea. Si cualquier paso falla, no queda nada.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, userID string, in dto.CheckoutRequest) (*entity.Sale, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validateCheckout(in); err != nil {
		return nil, err
	}

	// Líneas repetidas del mismo producto se suman para verificar suficiencia
	demand := inventory.Demand{}
	for _, it := range in.Items {
		demand.Add(it.ProductID, it.Qty)
	}

	// Pre-check en orden de la petición para reportar el primer producto con problema
	checked := make(map[string]bool, len(demand))
	for _, it := range in.Items {
		if checked[it.ProductID] {
			continue
		}
		checked[it.ProductID] = true
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ProductNotFound(it.ProductID)
		}
		if err := inventory.CheckSufficient(p, demand[it.ProductID]); err != nil {
			return nil, err
		}
	}

	total := decimal.Zero
	for _, it := range in.Items {
		total = total.Add(lineSubtotal(it))
	}

	var paid, change *decimal.Decimal
	if in.PaymentMethod == entity.PaymentCash {
		if in.PaidAmount.LessThan(total) {
			return nil, domain.NewValidationError("paidAmount",
				fmt.Sprintf("monto pagado insuficiente (total: %s)", total.String()))
		}
		p := *in.PaidAmount
		c := p.Sub(total)
		paid, change = &p, &c
	}

	var sale *entity.Sale
	var err error
	for attempt := 1; attempt <= maxInvoiceAttempts; attempt++ {
		sale, err = uc.commit(ctx, userID, in, demand, total, paid, change)
		if err == nil || !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// commit ejecuta la transacción de la venta con un número de factura nuevo.
func (uc *CheckoutUseCase) commit(
	ctx context.Context,
	userID string,
	in dto.CheckoutRequest,
	demand inventory.Demand,
	total decimal.Decimal,
	paid, change *decimal.Decimal,
) (*entity.Sale, error) {
	now := uc.now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		InvoiceNo:     uc.invoices.Next(now),
		TotalAmount:   total,
		PaymentMethod: in.PaymentMethod,
		PaidAmount:    paid,
		ChangeAmount:  change,
		CreatedBy:     userID,
		CreatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		locked, err := appinventory.LockProducts(ctx, r.Products, demand.ProductIDs())
		if err != nil {
			return err
		}
		// Verificación definitiva con las filas bloqueadas
		for _, id := range demand.ProductIDs() {
			if err := inventory.CheckSufficient(locked[id], demand[id]); err != nil {
				return err
			}
		}

		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}

		for _, it := range in.Items {
			p := locked[it.ProductID]
			item := &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   it.ProductID,
				Qty:         it.Qty,
				UnitPrice:   it.UnitPrice,
				Subtotal:    lineSubtotal(it),
				ProductName: p.Name,
				ProductSKU:  p.SKU,
			}
			if err := r.Sales.CreateItem(ctx, item); err != nil {
				return err
			}
			if _, err := appinventory.ApplyToLocked(ctx, r, p, appinventory.StockChange{
				ProductID:     it.ProductID,
				Type:          entity.MovementTypeOUT,
				Qty:           it.Qty,
				Delta:         -it.Qty,
				Note:          "Penjualan - " + sale.InvoiceNo,
				ReferenceType: entity.ReferenceSale,
				ReferenceID:   sale.ID,
				UserID:        userID,
				At:            now,
			}); err != nil {
				return err
			}
			sale.Items = append(sale.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

const amountRule = "máximo 2 decimales y menor a 1.000.000.000.000"

func lineSubtotal(it dto.SaleItemRequest) decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty)))
}

func validateCheckout(in dto.CheckoutRequest) error {
	v := &domain.ValidationError{}
	if len(in.Items) == 0 {
		v.Add("items", "requerido y no puede estar vacío")
	}
	if !entity.IsValidPaymentMethod(in.PaymentMethod) {
		v.Add("paymentMethod", "debe ser CASH o TRANSFER")
	}
	switch {
	case in.PaymentMethod == entity.PaymentCash && (in.PaidAmount == nil || !in.PaidAmount.IsPositive()):
		v.Add("paidAmount", "requerido para pago en efectivo")
	case in.PaidAmount != nil && !money.ValidAmount(*in.PaidAmount):
		v.Add("paidAmount", amountRule)
	}
	total := decimal.Zero
	for i, it := range in.Items {
		if it.ProductID == "" {
			v.Add(fmt.Sprintf("items[%d].productId", i), "requerido")
		}
		switch {
		case it.Qty <= 0:
			v.Add(fmt.Sprintf("items[%d].qty", i), "debe ser mayor a 0")
		case !inventory.ValidQuantity(it.Qty):
			v.Add(fmt.Sprintf("items[%d].qty", i), fmt.Sprintf("no puede superar %d", inventory.MaxQuantity))
		}
		switch {
		case !it.UnitPrice.IsPositive():
			v.Add(fmt.Sprintf("items[%d].unitPrice", i), "debe ser mayor a 0")
		case !money.ValidAmount(it.UnitPrice):
			v.Add(fmt.Sprintf("items[%d].unitPrice", i), amountRule)
		}
		total = total.Add(lineSubtotal(it))
	}
	if len(v.Fields) == 0 && !money.ValidAmount(total) {
		v.Add("items", "el total supera el máximo permitido")
	}
	return v.OrNil()
}
