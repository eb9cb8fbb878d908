package sales_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/application/inventory"
	"github.com/jhoicas/kawok-pos/internal/application/sales"
	"github.com/jhoicas/kawok-pos/internal/application/usecase"
	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
	"github.com/jhoicas/kawok-pos/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const cashier = "user-kasir"

// fixedInvoices devuelve los números en orden; el último se repite.
type fixedInvoices struct {
	mu   sync.Mutex
	nums []string
}

func (f *fixedInvoices) Next(time.Time) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.nums[0]
	if len(f.nums) > 1 {
		f.nums = f.nums[1:]
	}
	return n
}

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	checkout *sales.CheckoutUseCase
	moves    *inventory.RegisterMovementUseCase
	opname   *inventory.StockOpnameUseCase
}

func newFixture(t *testing.T, invoices sales.InvoiceNumberGenerator) *fixture {
	t.Helper()
	store := memory.NewStore()
	if invoices == nil {
		invoices = sales.RandomInvoiceNumber{Prefix: "KAWOK"}
	}
	return &fixture{
		ctx:      context.Background(),
		store:    store,
		checkout: sales.NewCheckoutUseCase(store, store.Products(), invoices),
		moves:    inventory.NewRegisterMovementUseCase(store, store.Products(), store.Movements()),
		opname:   inventory.NewStockOpnameUseCase(store, store.Opnames()),
	}
}

// product crea un producto con stock inicial (movimiento IN de apertura incluido).
func (f *fixture) product(t *testing.T, sku string, stock int) *entity.Product {
	t.Helper()
	price := decimal.NewFromInt(100000)
	p, err := usecase.NewProductUseCase(f.store, f.store.Products()).Create(f.ctx, cashier, dto.CreateProductRequest{
		SKU: sku, Name: "Produk " + sku, SellingPrice: &price, Stock: &stock,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) movements(t *testing.T, productID, movementType string) []*entity.StockMovement {
	t.Helper()
	list, _, err := f.store.Movements().List(f.ctx, repository.MovementFilter{ProductID: productID, Type: movementType})
	require.NoError(t, err)
	return list
}

// assertConsistent comprueba que el stock es igual a la suma de los movimientos.
func (f *fixture) assertConsistent(t *testing.T, productID string) {
	t.Helper()
	sum, err := f.store.Movements().SumDelta(f.ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, f.stock(t, productID), sum, "stock == Σ delta")
}

func (f *fixture) saleCount(t *testing.T) int {
	t.Helper()
	_, total, err := f.store.Sales().List(f.ctx, repository.SaleFilter{})
	require.NoError(t, err)
	return total
}

func cash(paid int64, items ...dto.SaleItemRequest) dto.CheckoutRequest {
	p := decimal.NewFromInt(paid)
	return dto.CheckoutRequest{Items: items, PaymentMethod: entity.PaymentCash, PaidAmount: &p}
}

func line(productID string, qty int, price int64) dto.SaleItemRequest {
	return dto.SaleItemRequest{ProductID: productID, Qty: qty, UnitPrice: decimal.NewFromInt(price)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_VendeTodoElStock(t *testing.T) {
	f := newFixture(t, nil)
	p := f.product(t, "KV001", 5)

	sale, err := f.checkout.Checkout(f.ctx, cashier, cash(500000, line(p.ID, 5, 100000)))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(500000).Equal(sale.TotalAmount))
	require.NotNil(t, sale.ChangeAmount)
	assert.True(t, sale.ChangeAmount.IsZero())
	assert.Equal(t, 0, f.stock(t, p.ID))

	outs := f.movements(t, p.ID, entity.MovementTypeOUT)
	require.Len(t, outs, 1)
	assert.Equal(t, 5, outs[0].Qty)
	assert.Equal(t, -5, outs[0].Delta)
	assert.Equal(t, entity.ReferenceSale, outs[0].ReferenceType)
	assert.Equal(t, sale.ID, outs[0].ReferenceID)
	assert.Equal(t, "Penjualan - "+sale.InvoiceNo, outs[0].Note)

	got, err := f.store.Products().GetByID(f.ctx, p.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.DateOut, "una venta marca la última salida")
	f.assertConsistent(t, p.ID)
}

func TestCheckout_SinStockNoEscribeNada(t *testing.T) {
	f := newFixture(t, nil)
	p := f.product(t, "KV001", 5)
	_, err := f.checkout.Checkout(f.ctx, cashier, cash(500000, line(p.ID, 5, 100000)))
	require.NoError(t, err)

	_, err = f.checkout.Checkout(f.ctx, cashier, cash(100000, line(p.ID, 1, 100000)))
	require.Error(t, err)
	var se *domain.InsufficientStockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0, se.Available)
	assert.Equal(t, 1, se.Requested)

	assert.Equal(t, 1, f.saleCount(t))
	assert.Len(t, f.movements(t, p.ID, entity.MovementTypeOUT), 1)
	f.assertConsistent(t, p.ID)
}

func TestCheckout_LineasRepetidasSeSuman(t *testing.T) {
	f := newFixture(t, nil)
	p := f.product(t, "KV001", 3)

	_, err := f.checkout.Checkout(f.ctx, cashier, cash(1000000, line(p.ID, 2, 100000), line(p.ID, 2, 100000)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock, "2+2 supera el stock de 3")
	assert.Equal(t, 3, f.stock(t, p.ID))

	sale, err := f.checkout.Checkout(f.ctx, cashier, cash(1000000, line(p.ID, 1, 100000), line(p.ID, 2, 100000)))
	require.NoError(t, err)
	assert.Len(t, sale.Items, 2)
	assert.Len(t, f.movements(t, p.ID, entity.MovementTypeOUT), 2, "un movimiento OUT por línea")
	assert.Equal(t, 0, f.stock(t, p.ID))
	f.assertConsistent(t, p.ID)
}

func TestCheckout_Transferencia(t *testing.T) {
	f := newFixture(t, nil)
	p := f.product(t, "KV001", 2)

	sale, err := f.checkout.Checkout(f.ctx, cashier, dto.CheckoutRequest{
		Items:         []dto.SaleItemRequest{line(p.ID, 1, 75000)},
		PaymentMethod: entity.PaymentTransfer,
	})
	require.NoError(t, err)
	assert.Nil(t, sale.PaidAmount)
	assert.Nil(t, sale.ChangeAmount)
}

func TestCheckout_MismoPayloadDosVentas(t *testing.T) {
	f := newFixture(t, nil)
	p := f.product(t, "KV001", 5)
	req := cash(200000, line(p.ID, 2, 100000))

	first, err := f.checkout.Checkout(f.ctx, cashier, req)
	require.NoError(t, err)
	second, err := f.checkout.Checkout(f.ctx, cashier, req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.InvoiceNo, second.InvoiceNo)
	assert.Equal(t, 2, f.saleCount(t))
	assert.Equal(t, 1, f.stock(t, p.ID))
	assert.Len(t, f.movements(t, p.ID, entity.MovementTypeOUT), 2)
	f.assertConsistent(t, p.ID)
}

func TestCheckout_Validacion(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.checkout.Checkout(f.ctx, cashier, dto.CheckoutRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "", Qty: 0, UnitPrice: decimal.Zero}},
		PaymentMethod: entity.PaymentCash,
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	fields := map[string]bool{}
	for _, fe := range ve.Fields {
		fields[fe.Field] = true
	}
	assert.True(t, fields["paidAmount"])
	assert.True(t, fields["items[0].productId"])
	assert.True(t, fields["items[0].qty"])
	assert.True(t, fields["items[0].unitPrice"])

	_, err = f.checkout.Checkout(f.ctx, "", cash(1, line("p", 1, 1)))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCheckout_LimitesDeCantidadEImporte(t *testing.T) {
	f := newFixture(t, nil)
	p := f.product(t, "KV001", 5)

	field := func(req dto.CheckoutRequest) string {
		t.Helper()
		_, err := f.checkout.Checkout(f.ctx, cashier, req)
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve), "%v", err)
		return ve.Fields[0].Field
	}

	assert.Equal(t, "items[0].qty", field(cash(100000, line(p.ID, math.MaxInt32+1, 1))))

	fraction := line(p.ID, 1, 0)
	fraction.UnitPrice = decimal.RequireFromString("0.005")
	assert.Equal(t, "items[0].unitPrice", field(cash(1, fraction)))

	assert.Equal(t, "items[0].unitPrice", field(cash(1, line(p.ID, 1, 1_000_000_000_000))))

	// cada precio es válido pero el total no cabe
	assert.Equal(t, "items", field(dto.CheckoutRequest{
		Items:         []dto.SaleItemRequest{line(p.ID, 2, 999_999_999_999)},
		PaymentMethod: entity.PaymentTransfer,
	}))

	paid := decimal.RequireFromString("100000.123")
	assert.Equal(t, "paidAmount", field(dto.CheckoutRequest{
		Items:         []dto.SaleItemRequest{line(p.ID, 1, 100000)},
		PaymentMethod: entity.PaymentCash,
		PaidAmount:    &paid,
	}))

	assert.Equal(t, 5, f.stock(t, p.ID))
	assert.Equal(t, 0, f.saleCount(t))
}

func TestCheckout_PagoInsuficiente(t *testing.T) {
	f := newFixture(t, nil)
	p := f.product(t, "KV001", 5)

	_, err := f.checkout.Checkout(f.ctx, cashier, cash(150000, line(p.ID, 2, 100000)))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 5, f.stock(t, p.ID))
	assert.Equal(t, 0, f.saleCount(t))
}

func TestCheckout_ProductoInexistente(t *testing.T) {
	f := newFixture(t, nil)
	p := f.product(t, "KV001", 5)

	_, err := f.checkout.Checkout(f.ctx, cashier, cash(1000000, line(p.ID, 1, 100000), line("ghost", 1, 100000)))
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "ghost")
	assert.Equal(t, 5, f.stock(t, p.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_FalloEnLineaRevierteTodo(t *testing.T) {
	f := newFixture(t, nil)
	a := f.product(t, "KV001", 5)
	b := f.product(t, "KV002", 5)

	boom := errors.New("disco lleno")
	f.store.FailOn(memory.OpSaleCreateItem, boom)
	_, err := f.checkout.Checkout(f.ctx, cashier, cash(1000000, line(a.ID, 1, 100000), line(b.ID, 1, 100000)))
	require.ErrorIs(t, err, boom)
	f.store.ClearFaults()

	assert.Equal(t, 0, f.saleCount(t))
	assert.Equal(t, 5, f.stock(t, a.ID))
	assert.Equal(t, 5, f.stock(t, b.ID))
	assert.Empty(t, f.movements(t, a.ID, entity.MovementTypeOUT))
	f.assertConsistent(t, a.ID)
	f.assertConsistent(t, b.ID)
}

func TestCheckout_FalloAlRegistrarMovimientoRevierteTodo(t *testing.T) {
	f := newFixture(t, nil)
	p := f.product(t, "KV001", 5)

	f.store.FailOn(memory.OpMovementCreate, errors.New("timeout"))
	_, err := f.checkout.Checkout(f.ctx, cashier, cash(100000, line(p.ID, 1, 100000)))
	require.Error(t, err)
	f.store.ClearFaults()

	assert.Equal(t, 0, f.saleCount(t))
	assert.Equal(t, 5, f.stock(t, p.ID))
}

func TestCheckout_ReintentaFacturaDuplicada(t *testing.T) {
	f := newFixture(t, &fixedInvoices{nums: []string{"KAWOK-20260101-0001", "KAWOK-20260101-0001", "KAWOK-20260101-0002"}})
	p := f.product(t, "KV001", 5)

	first, err := f.checkout.Checkout(f.ctx, cashier, cash(100000, line(p.ID, 1, 100000)))
	require.NoError(t, err)
	second, err := f.checkout.Checkout(f.ctx, cashier, cash(100000, line(p.ID, 1, 100000)))
	require.NoError(t, err)

	assert.Equal(t, "KAWOK-20260101-0001", first.InvoiceNo)
	assert.Equal(t, "KAWOK-20260101-0002", second.InvoiceNo)
	assert.Equal(t, 3, f.stock(t, p.ID))
	f.assertConsistent(t, p.ID)
}

func TestCheckout_FacturaDuplicadaAgotaReintentos(t *testing.T) {
	f := newFixture(t, &fixedInvoices{nums: []string{"KAWOK-20260101-0001"}})
	p := f.product(t, "KV001", 5)

	_, err := f.checkout.Checkout(f.ctx, cashier, cash(100000, line(p.ID, 1, 100000)))
	require.NoError(t, err)
	_, err = f.checkout.Checkout(f.ctx, cashier, cash(100000, line(p.ID, 1, 100000)))
	require.ErrorIs(t, err, domain.ErrDuplicate)

	assert.Equal(t, 1, f.saleCount(t))
	assert.Equal(t, 4, f.stock(t, p.ID))
}

func TestCheckout_ConcurrenteUltimaUnidad(t *testing.T) {
	f := newFixture(t, nil)
	p := f.product(t, "KV001", 1)

	const buyers = 8
	var wg sync.WaitGroup
	errs := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.checkout.Checkout(f.ctx, cashier, cash(100000, line(p.ID, 1, 100000)))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok, insufficient := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente una venta se confirma")
	assert.Equal(t, buyers-1, insufficient)
	assert.Equal(t, 0, f.stock(t, p.ID))
	assert.Equal(t, 1, f.saleCount(t))
	f.assertConsistent(t, p.ID)
}
