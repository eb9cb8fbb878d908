// Package money formatea montos en Rupiah para recibos y exportaciones.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxAmount límite exclusivo de NUMERIC(14,2).
var MaxAmount = decimal.New(1, 12)

// ValidAmount indica si d tiene a lo sumo 2 decimales y cabe en NUMERIC(14,2).
func ValidAmount(d decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThan(MaxAmount)
}

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah devuelve el monto redondeado a enteros con separador de miles local.
// Ej: 1500000 -> "Rp 1.500.000".
func FormatRupiah(d decimal.Decimal) string {
	n := d.Round(0).IntPart()
	if n < 0 {
		return printer.Sprintf("-Rp %d", -n)
	}
	return printer.Sprintf("Rp %d", n)
}

// FormatNumber aplica solo el separador de miles (sin símbolo).
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}
