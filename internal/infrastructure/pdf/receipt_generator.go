// Package pdf genera el recibo de venta en PDF.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────┐
//	│  TIENDA: Nombre / Dirección / Teléfono     │
//	│  ───────────────────────────────────────  │
//	│  N° Factura + Fecha + Cajero + Pago        │
//	│  ───────────────────────────────────────  │
//	│  TABLA: Producto | Cant | Precio | Subtotal│
//	│  ───────────────────────────────────────  │
//	│  TOTALES: Total / Pagado / Cambio          │
//	│  FOOTER: QR del N° Factura + agradecimiento│
//	└───────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/kawok-pos/internal/application/sales"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/pkg/money"
)

var _ sales.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 33, Green: 33, Blue: 33}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// ReceiptGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceiptPDF genera el recibo y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(_ context.Context, sale *entity.Sale, store sales.StoreInfo) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Receipt "+sale.InvoiceNo, true).
		WithAuthor(store.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(storeRows(store)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))
	m.AddRows(saleInfoRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(sale.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(totalsRows(sale)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func storeRows(store sales.StoreInfo) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(text.New(store.Name, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary, Top: 1,
		}))),
	}
	if store.Address != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(text.New(store.Address, props.Text{
			Size: 7, Align: align.Center, Color: colorGray,
		}))))
	}
	if store.Phone != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(text.New("Telp: "+store.Phone, props.Text{
			Size: 7, Align: align.Center, Color: colorGray,
		}))))
	}
	return rows
}

func saleInfoRow(sale *entity.Sale) core.Row {
	cashier := nonEmpty(sale.UserName, sale.CreatedBy)
	return row.New(14).Add(
		col.New(7).Add(
			text.New(sale.InvoiceNo, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
			text.New("Kasir: "+cashier, props.Text{Size: 7, Top: 7, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(sale.CreatedAt.UTC().Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New(sale.PaymentMethod, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Produk", 5, align.Left),
		h("Qty", 2, align.Center),
		h("Harga", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func itemRows(items []*entity.SaleItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		out = append(out, row.New(6).Add(
			col.New(5).Add(text.New(nonEmpty(it.ProductName, it.ProductID), props.Text{Size: 7, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(it.Qty), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money.FormatRupiah(it.UnitPrice), props.Text{Size: 7, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(money.FormatRupiah(it.Subtotal), props.Text{Size: 7, Align: align.Right, Top: 1})),
		))
	}
	return out
}

func totalsRows(sale *entity.Sale) []core.Row {
	amountRow := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return row.New(5).Add(
			col.New(7).Add(text.New(label, props.Text{Style: style, Size: 8, Align: align.Right, Right: 2})),
			col.New(5).Add(text.New(value, props.Text{Style: style, Size: 8, Align: align.Right})),
		)
	}
	rows := []core.Row{amountRow("TOTAL", money.FormatRupiah(sale.TotalAmount), true)}
	if sale.PaidAmount != nil {
		rows = append(rows, amountRow("Bayar", money.FormatRupiah(*sale.PaidAmount), false))
	}
	if sale.ChangeAmount != nil {
		rows = append(rows, amountRow("Kembali", money.FormatRupiah(*sale.ChangeAmount), false))
	}
	return rows
}

func footerRow(sale *entity.Sale) core.Row {
	return row.New(24).Add(
		col.New(4).Add(code.NewQr(sale.InvoiceNo, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Terima kasih atas kunjungan Anda", props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 6, Left: 2, Color: colorPrimary,
			}),
			text.New(fmt.Sprintf("%d item", sale.ItemCount()), props.Text{
				Size: 7, Top: 12, Left: 2, Color: colorGray,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
