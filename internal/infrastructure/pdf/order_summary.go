// Package pdf genera el resumen imprimible de un pedido (copia local, no la factura oficial).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + tienda     │  N° pedido + fecha + estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Qty | Product | Unit price | Line total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Units / TOTAL                                      │
//	│  FOOTER: QR a la factura oficial + leyenda                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
	"github.com/jhoicas/orderly-console/internal/domain/orderflow"
)

var _ ports.OrderPDFGenerator = (*OrderSummaryGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 4, Green: 120, Blue: 87}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// OrderSummaryGenerator implementa ports.OrderPDFGenerator con Maroto v2.
type OrderSummaryGenerator struct{}

// NewOrderSummaryGenerator construye el generador.
func NewOrderSummaryGenerator() *OrderSummaryGenerator { return &OrderSummaryGenerator{} }

// GenerateOrderPDF genera el PDF y devuelve sus bytes.
func (g *OrderSummaryGenerator) GenerateOrderPDF(ctx context.Context, doc ports.OrderDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc.Title == "" {
		doc.Title = "Order Summary"
	}
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now()
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor("Orderly", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(doc.Order.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc.Order))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

func headerRow(doc ports.OrderDocument) core.Row {
	status := orderflow.Describe(doc.Order.Status)
	date := doc.Order.CreatedAt
	if date.IsZero() {
		date = doc.GeneratedAt
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New(doc.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(doc.Party, nonEmpty(doc.Order.ShopName, "-")), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ORDER", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(shortID(doc.Order.ID), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6}),
			text.New("Date: "+date.Format("02 Jan 2006"), props.Text{Size: 8, Align: align.Right, Top: 12, Color: colorGray}),
			text.New("Status: "+status.Label, props.Text{Size: 8, Align: align.Right, Top: 16, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Product", 6, align.Left),
		h("Unit price", 2, align.Right),
		h("Line total", 3, align.Right),
	)
}

func itemRows(items []entity.OrderItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(it.Qty), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(nonEmpty(it.Name, it.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(FormatMoney(it.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(FormatMoney(it.LineTotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(o entity.Order) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Color: colorPrimary, Top: 6})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Units:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2}),
			label("TOTAL:"),
		),
		col.New(3).Add(
			text.New(strconv.Itoa(o.Units()), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(FormatMoney(o.Total()), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Color: colorPrimary, Top: 6}),
		),
	)
}

func footerRows(doc ports.OrderDocument) []core.Row {
	legend := "Summary generated " + doc.GeneratedAt.UTC().Format("2006-01-02 15:04 MST") +
		". This copy is informative; the official invoice is issued by the distributor."
	if doc.ReferenceURL == "" {
		return []core.Row{row.New(10).Add(col.New(12).Add(
			text.New(legend, props.Text{Size: 7, Color: colorGray, Top: 2}),
		))}
	}
	return []core.Row{row.New(40).Add(
		col.New(3).Add(code.NewQr(doc.ReferenceURL, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Scan to download the official invoice.", props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New(legend, props.Text{Size: 7, Top: 14, Left: 3, Color: colorGray}),
		),
	)}
}

// FormatMoney formato con separador de miles y dos decimales: 1234.5 → "1,234.50".
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID primeros 8 caracteres del id, como se muestran en la UI.
func shortID(id string) string {
	if len(id) > 8 {
		return "#" + strings.ToUpper(id[:8])
	}
	return "#" + strings.ToUpper(id)
}
