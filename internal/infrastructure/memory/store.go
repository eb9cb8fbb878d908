// Package memory implementa todos los repositorios y el TxRunner en memoria.
// Lo usan los tests y el driver DB_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

// state datos del store. Una transacción trabaja sobre una copia y la publica al confirmar.
type state struct {
	products    map[string]*entity.Product
	users       map[string]*entity.User
	settings    map[string]*entity.Setting
	movements   []*entity.StockMovement
	sales       []*entity.Sale // sin Items; las líneas viven en saleItems
	saleItems   []*entity.SaleItem
	opnames     []*entity.StockOpname
	opnameItems []*entity.StockOpnameItem
}

func newState() *state {
	return &state{
		products: map[string]*entity.Product{},
		users:    map[string]*entity.User{},
		settings: map[string]*entity.Setting{},
	}
}

// clone copia superficial de cada entidad: las entidades guardadas nunca se modifican en sitio.
func (s *state) clone() *state {
	c := &state{
		products:    make(map[string]*entity.Product, len(s.products)),
		users:       make(map[string]*entity.User, len(s.users)),
		settings:    make(map[string]*entity.Setting, len(s.settings)),
		movements:   append([]*entity.StockMovement(nil), s.movements...),
		sales:       append([]*entity.Sale(nil), s.sales...),
		saleItems:   append([]*entity.SaleItem(nil), s.saleItems...),
		opnames:     append([]*entity.StockOpname(nil), s.opnames...),
		opnameItems: append([]*entity.StockOpnameItem(nil), s.opnameItems...),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.settings {
		c.settings[k] = v
	}
	return c
}

// Store almacén en memoria. Las transacciones se serializan (equivalente a bloquear todas las filas)
// y son atómicas: si fn falla no se publica ningún cambio.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	cur  *state

	faultMu sync.Mutex
	faults  map[string]error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{cur: newState(), faults: map[string]error{}}
}

// Operaciones donde se puede inyectar un fallo con FailOn.
const (
	OpProductCreate      = "products.Create"
	OpProductUpdate      = "products.Update"
	OpProductUpdateStock = "products.UpdateStock"
	OpProductDelete      = "products.Delete"
	OpMovementCreate     = "movements.Create"
	OpSaleCreate         = "sales.Create"
	OpSaleCreateItem     = "sales.CreateItem"
	OpOpnameCreate       = "opnames.Create"
	OpOpnameCreateItem   = "opnames.CreateItem"
	OpSettingUpsert      = "settings.Upsert"
)

// FailOn hace que op devuelva err hasta llamar ClearFaults.
func (s *Store) FailOn(op string, err error) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	s.faults[op] = err
}

// ClearFaults elimina los fallos inyectados.
func (s *Store) ClearFaults() {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	s.faults = map[string]error{}
}

func (s *Store) fault(op string) error {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	return s.faults[op]
}

// Run ejecuta fn con repositorios atados a una copia del estado y la publica si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.cur.clone()
	s.mu.RUnlock()

	if err := fn(s.reposFor(work)); err != nil {
		return err
	}

	s.mu.Lock()
	s.cur = work
	s.mu.Unlock()
	return nil
}

// Repos repositorios fuera de transacción.
func (s *Store) Repos() repository.TxRepos {
	return s.reposFor(nil)
}

func (s *Store) reposFor(tx *state) repository.TxRepos {
	b := &binding{store: s, tx: tx}
	return repository.TxRepos{
		Products:  &ProductRepo{b},
		Movements: &StockMovementRepo{b},
		Sales:     &SaleRepo{b},
		Opnames:   &StockOpnameRepo{b},
		Settings:  &SettingRepo{b},
	}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{&binding{store: s}} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{&binding{store: s}} }

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{&binding{store: s}} }

// Opnames repositorio de conteos fuera de transacción.
func (s *Store) Opnames() *StockOpnameRepo { return &StockOpnameRepo{&binding{store: s}} }

// Settings repositorio de configuración fuera de transacción.
func (s *Store) Settings() *SettingRepo { return &SettingRepo{&binding{store: s}} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{&binding{store: s}} }

// Reports consultas agregadas.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{&binding{store: s}} }

// binding ata un repositorio al estado publicado (tx == nil) o a la copia de una transacción.
type binding struct {
	store *Store
	tx    *state
}

func (b *binding) read(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.store.mu.RLock()
	defer b.store.mu.RUnlock()
	return fn(b.store.cur)
}

// write fuera de transacción publica sobre una copia, igual que Run.
func (b *binding) write(op string, fn func(st *state) error) error {
	if err := b.store.fault(op); err != nil {
		return err
	}
	if b.tx != nil {
		return fn(b.tx)
	}
	b.store.txMu.Lock()
	defer b.store.txMu.Unlock()
	b.store.mu.RLock()
	work := b.store.cur.clone()
	b.store.mu.RUnlock()
	if err := fn(work); err != nil {
		return err
	}
	b.store.mu.Lock()
	b.store.cur = work
	b.store.mu.Unlock()
	return nil
}

// page aplica offset/limit sobre n elementos. limit <= 0 devuelve todo.
func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}

// newestFirst ordena por fecha descendente; en empate, el último insertado primero.
func newestFirst[T any](list []T, at func(T) int64) {
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	sort.SliceStable(list, func(i, j int) bool { return at(list[i]) > at(list[j]) })
}
