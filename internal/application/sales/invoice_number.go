package sales

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// InvoiceNumberGenerator genera números de factura PREFIX-YYYYMMDD-NNNN.
type InvoiceNumberGenerator interface {
	Next(now time.Time) string
}

// RandomInvoiceNumber sufijo aleatorio de 4 dígitos. La unicidad la garantiza el
// índice único de la BD; ante colisión el checkout reintenta una vez.
type RandomInvoiceNumber struct {
	Prefix string
}

// Next devuelve un número nuevo para la fecha (UTC) de now.
func (g RandomInvoiceNumber) Next(now time.Time) string {
	return fmt.Sprintf("%s-%s-%04d", g.Prefix, now.UTC().Format("20060102"), rand.IntN(10000))
}
