// Package inventory reúne las reglas de dominio del stock (servicios puros, sin I/O).
package inventory

import (
	"fmt"
	"math"
	"sort"

	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
)

// MaxQuantity tope de qty, countedQty y stock (columnas INTEGER).
const MaxQuantity = math.MaxInt32

// ValidQuantity indica si n cabe en una columna de cantidad.
func ValidQuantity(n int) bool {
	return n <= MaxQuantity
}

// CheckCapacity devuelve ValidationError si sumar delta deja el stock por encima de MaxQuantity.
func CheckCapacity(p *entity.Product, delta int) error {
	if delta > 0 && delta > MaxQuantity-p.Stock {
		return domain.NewValidationError("qty",
			fmt.Sprintf("el stock de %s superaría el máximo de %d", p.Name, MaxQuantity))
	}
	return nil
}

// SignedDelta cambio con signo que un movimiento manual aplica al stock.
// IN y ADJUST suman, OUT resta.
func SignedDelta(movementType string, qty int) int {
	if movementType == entity.MovementTypeOUT {
		return -qty
	}
	return qty
}

// Reconcile suma los Delta de los movimientos; debe coincidir con Product.Stock.
func Reconcile(movements []*entity.StockMovement) int {
	total := 0
	for _, m := range movements {
		total += m.Delta
	}
	return total
}

// CheckSufficient devuelve InsufficientStockError si p no cubre qty.
func CheckSufficient(p *entity.Product, qty int) error {
	if p.Stock < qty {
		return &domain.InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Available:   p.Stock,
			Requested:   qty,
		}
	}
	return nil
}

// LockOrder devuelve los IDs únicos en orden ascendente.
// Todas las transacciones bloquean productos en este orden para no generar deadlocks.
func LockOrder(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Demand agrupa cantidades pedidas por producto (líneas repetidas se suman).
type Demand map[string]int

// Add suma qty al producto.
func (d Demand) Add(productID string, qty int) {
	d[productID] += qty
}

// ProductIDs IDs en orden de bloqueo.
func (d Demand) ProductIDs() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	return LockOrder(ids)
}
