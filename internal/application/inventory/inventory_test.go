package inventory_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/application/inventory"
	"github.com/jhoicas/kawok-pos/internal/application/usecase"
	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/kawok-pos/internal/domain/inventory"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
	"github.com/jhoicas/kawok-pos/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const userID = "user-gudang"

type fixture struct {
	ctx       context.Context
	store     *memory.Store
	moves     *inventory.RegisterMovementUseCase
	opname    *inventory.StockOpnameUseCase
	reconcile *inventory.ReconcileUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{
		ctx:       context.Background(),
		store:     store,
		moves:     inventory.NewRegisterMovementUseCase(store, store.Products(), store.Movements()),
		opname:    inventory.NewStockOpnameUseCase(store, store.Opnames()),
		reconcile: inventory.NewReconcileUseCase(store.Products(), store.Movements()),
	}
}

func (f *fixture) product(t *testing.T, sku string, stock int) *entity.Product {
	t.Helper()
	price := decimal.NewFromInt(50000)
	p, err := usecase.NewProductUseCase(f.store, f.store.Products()).Create(f.ctx, userID, dto.CreateProductRequest{
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

func (f *fixture) assertConsistent(t *testing.T, productID string) {
	t.Helper()
	rec, err := f.reconcile.Check(f.ctx, productID)
	require.NoError(t, err)
	assert.True(t, rec.Consistent, "stock %d, movimientos %d", rec.Stock, rec.MovementSum)
}

func (f *fixture) register(typ string, productID string, qty int) (*entity.StockMovement, error) {
	return f.moves.RegisterMovement(f.ctx, inventory.MovementInput{
		UserID: userID, ProductID: productID, Type: typ, Qty: qty,
	})
}

func counted(n int) *int { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos manuales
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_IN(t *testing.T) {
	f := newFixture()
	p := f.product(t, "KV001", 0)

	mov, err := f.moves.RegisterMovement(f.ctx, inventory.MovementInput{
		UserID: userID, ProductID: p.ID, Type: entity.MovementTypeIN, Qty: 20,
		Note: "restock supplier", ReferenceType: "PO", ReferenceID: "PO-7",
	})
	require.NoError(t, err)
	assert.Equal(t, 20, mov.Delta)
	assert.Equal(t, "restock supplier", mov.Note)
	assert.Equal(t, "PO-7", mov.ReferenceID)
	assert.Equal(t, 20, f.stock(t, p.ID))

	got, err := f.store.Products().GetByID(f.ctx, p.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.DateIn, "primer stock positivo marca dateIn")
	f.assertConsistent(t, p.ID)
}

func TestRegisterMovement_OUTSinStockSuficiente(t *testing.T) {
	f := newFixture()
	p := f.product(t, "KV001", 2)

	_, err := f.register(entity.MovementTypeOUT, p.ID, 3)
	var se *domain.InsufficientStockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Available)
	assert.Equal(t, 2, f.stock(t, p.ID))

	mov, err := f.register(entity.MovementTypeOUT, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, -2, mov.Delta)
	assert.Equal(t, 0, f.stock(t, p.ID))
	f.assertConsistent(t, p.ID)
}

func TestRegisterMovement_ADJUSTManualSuma(t *testing.T) {
	f := newFixture()
	p := f.product(t, "KV001", 4)

	mov, err := f.register(entity.MovementTypeADJUST, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, mov.Delta)
	assert.Equal(t, 7, f.stock(t, p.ID))
	f.assertConsistent(t, p.ID)
}

func TestRegisterMovement_Validacion(t *testing.T) {
	f := newFixture()

	_, err := f.register("TRANSFER", "", 0)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 3, "productId, type y qty se reportan juntos")

	_, err = f.register(entity.MovementTypeIN, "ghost", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.moves.RegisterMovement(f.ctx, inventory.MovementInput{ProductID: "x", Type: entity.MovementTypeIN, Qty: 1})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegisterMovement_CantidadFueraDeRango(t *testing.T) {
	f := newFixture()
	p := f.product(t, "KV001", 5)

	for _, qty := range []int{math.MaxInt, domaininv.MaxQuantity + 1} {
		_, err := f.register(entity.MovementTypeIN, p.ID, qty)
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve), "qty %d", qty)
		assert.Equal(t, "qty", ve.Fields[0].Field)
	}
	assert.Equal(t, 5, f.stock(t, p.ID))
}

func TestRegisterMovement_StockNoSuperaElMaximo(t *testing.T) {
	f := newFixture()
	p := f.product(t, "KV001", 5)

	_, err := f.register(entity.MovementTypeIN, p.ID, domaininv.MaxQuantity)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.stock(t, p.ID))

	_, err = f.register(entity.MovementTypeADJUST, p.ID, domaininv.MaxQuantity-4)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.register(entity.MovementTypeIN, p.ID, domaininv.MaxQuantity-5)
	require.NoError(t, err)
	assert.Equal(t, domaininv.MaxQuantity, f.stock(t, p.ID))
	f.assertConsistent(t, p.ID)
}

func TestRegisterMovement_FalloRevierteStock(t *testing.T) {
	f := newFixture()
	p := f.product(t, "KV001", 5)

	f.store.FailOn(memory.OpMovementCreate, errors.New("conexión perdida"))
	_, err := f.register(entity.MovementTypeOUT, p.ID, 1)
	require.Error(t, err)
	f.store.ClearFaults()

	assert.Equal(t, 5, f.stock(t, p.ID), "sin movimiento no cambia el stock")
	f.assertConsistent(t, p.ID)
}

func TestListFromRequest_FiltrosYPaginacion(t *testing.T) {
	f := newFixture()
	p := f.product(t, "KV001", 10)
	for i := 0; i < 3; i++ {
		_, err := f.register(entity.MovementTypeOUT, p.ID, 1)
		require.NoError(t, err)
	}

	out, err := f.moves.ListFromRequest(f.ctx, dto.MovementListRequest{
		PageRequest: dto.PageRequest{Page: 1, Limit: 2},
		Type:        entity.MovementTypeOUT,
	})
	require.NoError(t, err)
	assert.Len(t, out.Movements, 2)
	assert.Equal(t, dto.Pagination{Page: 1, Limit: 2, Total: 3, Pages: 2}, out.Pagination)

	all, err := f.moves.ListFromRequest(f.ctx, dto.MovementListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 20, all.Pagination.Limit, "movimientos paginan de 20 en 20")
	assert.Equal(t, 4, all.Pagination.Total)

	_, err = f.moves.ListFromRequest(f.ctx, dto.MovementListRequest{Type: "LOST"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock opname
// ──────────────────────────────────────────────────────────────────────────────

func TestStockOpname_AjusteDejaElStockContado(t *testing.T) {
	f := newFixture()
	p := f.product(t, "KV001", 12)

	o, err := f.opname.Create(f.ctx, userID, dto.CreateOpnameRequest{
		Items:             []dto.OpnameItemRequest{{ProductID: p.ID, CountedQty: counted(9)}},
		ConfirmAdjustment: true,
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.True(t, o.Adjusted)
	assert.Equal(t, 12, o.Items[0].SystemQty)
	assert.Equal(t, -3, o.Items[0].Diff)
	assert.Equal(t, 9, f.stock(t, p.ID))

	adjusts, _, err := f.store.Movements().List(f.ctx, repository.MovementFilter{
		ProductID: p.ID, Type: entity.MovementTypeADJUST,
	})
	require.NoError(t, err)
	require.Len(t, adjusts, 1)
	assert.Equal(t, 3, adjusts[0].Qty)
	assert.Equal(t, -3, adjusts[0].Delta)
	assert.Equal(t, entity.ReferenceStockOpname, adjusts[0].ReferenceType)
	assert.Equal(t, o.ID, adjusts[0].ReferenceID)
	assert.Equal(t, "Stock opname adjustment - Opname #"+o.ID, adjusts[0].Note)
	f.assertConsistent(t, p.ID)
}

func TestStockOpname_SinConfirmarSoloRegistra(t *testing.T) {
	f := newFixture()
	p := f.product(t, "KV001", 12)

	o, err := f.opname.Create(f.ctx, userID, dto.CreateOpnameRequest{
		Items: []dto.OpnameItemRequest{{ProductID: p.ID, CountedQty: counted(15)}},
	})
	require.NoError(t, err)
	assert.False(t, o.Adjusted)
	assert.Equal(t, 3, o.Items[0].Diff)
	assert.Equal(t, 12, f.stock(t, p.ID))

	adjusts, _, err := f.store.Movements().List(f.ctx, repository.MovementFilter{
		ProductID: p.ID, Type: entity.MovementTypeADJUST,
	})
	require.NoError(t, err)
	assert.Empty(t, adjusts, "sin confirmar no se registra ajuste")
	f.assertConsistent(t, p.ID)

	stored, err := f.opname.GetByID(f.ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 15, stored.Items[0].CountedQty)
}

func TestStockOpname_ItemsEnOrdenDePeticion(t *testing.T) {
	f := newFixture()
	a := f.product(t, "KV001", 1)
	b := f.product(t, "KV002", 2)
	c := f.product(t, "KV003", 3)

	o, err := f.opname.Create(f.ctx, userID, dto.CreateOpnameRequest{
		Items: []dto.OpnameItemRequest{
			{ProductID: c.ID, CountedQty: counted(3)},
			{ProductID: a.ID, CountedQty: counted(0)},
			{ProductID: b.ID, CountedQty: counted(2)},
		},
		ConfirmAdjustment: true,
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 3)
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, []string{o.Items[0].ProductID, o.Items[1].ProductID, o.Items[2].ProductID})
	assert.Equal(t, 0, f.stock(t, a.ID))

	// Solo el producto con diferencia genera ADJUST
	_, total, err := f.store.Movements().List(f.ctx, repository.MovementFilter{Type: entity.MovementTypeADJUST})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestStockOpname_ProductoRepetidoVeStockAjustado(t *testing.T) {
	f := newFixture()
	p := f.product(t, "KV001", 10)

	o, err := f.opname.Create(f.ctx, userID, dto.CreateOpnameRequest{
		Items: []dto.OpnameItemRequest{
			{ProductID: p.ID, CountedQty: counted(8)},
			{ProductID: p.ID, CountedQty: counted(6)},
		},
		ConfirmAdjustment: true,
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 2)
	// la segunda línea toma como sistema el stock ya ajustado por la primera
	assert.Equal(t, 10, o.Items[0].SystemQty)
	assert.Equal(t, -2, o.Items[0].Diff)
	assert.Equal(t, 8, o.Items[1].SystemQty)
	assert.Equal(t, -2, o.Items[1].Diff)
	assert.Equal(t, 6, f.stock(t, p.ID))
	f.assertConsistent(t, p.ID)
}

func TestStockOpname_ProductoInexistenteRevierteTodo(t *testing.T) {
	f := newFixture()
	p := f.product(t, "KV001", 12)

	_, err := f.opname.Create(f.ctx, userID, dto.CreateOpnameRequest{
		Items: []dto.OpnameItemRequest{
			{ProductID: p.ID, CountedQty: counted(1)},
			{ProductID: "ghost", CountedQty: counted(1)},
		},
		ConfirmAdjustment: true,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "ghost")

	assert.Equal(t, 12, f.stock(t, p.ID))
	list, err := f.opname.ListFromRequest(f.ctx, dto.OpnameListRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.StockOpnames, "no queda cabecera huérfana")
}

func TestStockOpname_FalloEnLineaRevierteAjustes(t *testing.T) {
	f := newFixture()
	p := f.product(t, "KV001", 12)

	f.store.FailOn(memory.OpOpnameCreateItem, errors.New("disco lleno"))
	_, err := f.opname.Create(f.ctx, userID, dto.CreateOpnameRequest{
		Items:             []dto.OpnameItemRequest{{ProductID: p.ID, CountedQty: counted(1)}},
		ConfirmAdjustment: true,
	})
	require.Error(t, err)
	f.store.ClearFaults()

	assert.Equal(t, 12, f.stock(t, p.ID))
	f.assertConsistent(t, p.ID)
}

func TestStockOpname_Validacion(t *testing.T) {
	f := newFixture()

	_, err := f.opname.Create(f.ctx, userID, dto.CreateOpnameRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.opname.Create(f.ctx, userID, dto.CreateOpnameRequest{
		Items: []dto.OpnameItemRequest{{ProductID: ""}, {ProductID: "x", CountedQty: counted(-1)}},
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 3)

	_, err = f.opname.Create(f.ctx, userID, dto.CreateOpnameRequest{
		Items: []dto.OpnameItemRequest{{ProductID: "x", CountedQty: counted(domaininv.MaxQuantity + 1)}},
	})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "items[0].countedQty", ve.Fields[0].Field)

	_, err = f.opname.GetByID(f.ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conciliación
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_ProductoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.reconcile.Check(f.ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReconcile_DetectaDescuadre(t *testing.T) {
	f := newFixture()
	p := f.product(t, "KV001", 5)

	// Escritura directa saltándose el motor
	broken := *p
	broken.Stock = 7
	require.NoError(t, f.store.Products().UpdateStock(f.ctx, &broken))

	rec, err := f.reconcile.Check(f.ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, rec.Consistent)
	assert.Equal(t, 7, rec.Stock)
	assert.Equal(t, 5, rec.MovementSum)
}
