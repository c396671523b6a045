package sheet

import (
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
	"github.com/jhoicas/orderly-console/internal/domain/orderflow"
)

var _ ports.OrderExporter = (*OrderExporter)(nil)

// OrderExporter genera el historial de pedidos en XLSX: una hoja de resumen y una de líneas.
type OrderExporter struct{}

// NewOrderExporter construye el exportador.
func NewOrderExporter() *OrderExporter { return &OrderExporter{} }

// ExportOrders escribe el libro en memoria.
func (e *OrderExporter) ExportOrders(orders []entity.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summary, lines = "Orders", "Items"
	index, err := f.NewSheet(summary)
	if err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(lines); err != nil {
		return nil, err
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	writeRow(f, summary, 1, []any{"Order ID", "Shop", "Status", "Units", "Total", "Created", "Updated"})
	writeRow(f, lines, 1, []any{"Order ID", "Product ID", "Product", "Price", "Qty", "Line Total"})

	line := 2
	for i, o := range orders {
		total, _ := o.Total().Float64()
		writeRow(f, summary, i+2, []any{
			o.ID,
			o.ShopName,
			orderflow.Describe(o.Status).Label,
			o.Units(),
			total,
			formatTime(o.CreatedAt),
			formatTime(o.UpdatedAt),
		})
		for _, it := range o.Items {
			price, _ := it.Price.Float64()
			lt, _ := it.LineTotal().Float64()
			writeRow(f, lines, line, []any{o.ID, it.ProductID, it.Name, price, it.Qty, lt})
			line++
		}
	}

	_ = f.SetColWidth(summary, "A", "A", 38)
	_ = f.SetColWidth(summary, "B", "B", 28)
	_ = f.SetColWidth(summary, "C", "C", 18)
	_ = f.SetColWidth(summary, "F", "G", 20)
	_ = f.SetColWidth(lines, "A", "B", 38)
	_ = f.SetColWidth(lines, "C", "C", 28)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(summary, "A1", "G1", style)
	_ = f.SetCellStyle(lines, "A1", "F1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for c, v := range values {
		cell, _ := excelize.CoordinatesToCellName(c+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}
