package sheet_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/orderly-console/internal/domain/entity"
	"github.com/jhoicas/orderly-console/internal/infrastructure/sheet"
)

// ── Importación de catálogo ──────────────────────────────────────────────────

func TestParseCatalog_CSVConAliasDeCabecera(t *testing.T) {
	csvData := "SKU,Product,Price,Qty\n" +
		"SKU-1,Sunrise Tea 250g,85,120\n" +
		",,10,5\n" +
		"SKU-3,Premium Rice 5kg,\"1,320.50\",abc\n"

	rows, err := sheet.NewCatalogParser().ParseCatalog("catalog.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2, "las filas sin nombre se descartan")

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "SKU-1", rows[0].SKU)
	assert.Equal(t, "Sunrise Tea 250g", rows[0].Input.Name)
	assert.True(t, decimal.NewFromInt(85).Equal(rows[0].Input.Price))
	assert.Equal(t, 120, rows[0].Input.Stock)

	assert.Equal(t, 4, rows[1].Line)
	assert.True(t, decimal.RequireFromString("1320.50").Equal(rows[1].Input.Price))
	assert.Equal(t, 0, rows[1].Input.Stock, "stock inválido = 0")
}

func TestParseCatalog_CSVWindows1252(t *testing.T) {
	data := []byte("name,price\nCaf\xe9 molido,12\n")

	rows, err := sheet.NewCatalogParser().ParseCatalog("legacy.csv", bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café molido", rows[0].Input.Name)
}

func TestParseCatalog_CSVConBOM(t *testing.T) {
	data := "\xef\xbb\xbfName,Price,Stock\nSoap,3.5,7\n"

	rows, err := sheet.NewCatalogParser().ParseCatalog("bom.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].Input.Stock)
}

func TestParseCatalog_SinColumnaNombre(t *testing.T) {
	rows, err := sheet.NewCatalogParser().ParseCatalog("x.csv", strings.NewReader("price,stock\n1,2\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseCatalog_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"name", "price", "stock"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Organic Honey 500g", 180, 25}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := sheet.NewCatalogParser().ParseCatalog("catalog.XLSX", buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Organic Honey 500g", rows[0].Input.Name)
	assert.True(t, decimal.NewFromInt(180).Equal(rows[0].Input.Price))
	assert.Equal(t, 25, rows[0].Input.Stock)
}

func TestParseCatalog_FormatoNoSoportado(t *testing.T) {
	_, err := sheet.NewCatalogParser().ParseCatalog("catalog.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, sheet.ErrUnsupportedFormat)
}

// ── Exportación de pedidos ───────────────────────────────────────────────────

func TestExportOrders_HojasYValores(t *testing.T) {
	orders := []entity.Order{{
		ID:        "o1",
		ShopName:  "Corner Shop",
		Status:    entity.StatusOutForDelivery,
		CreatedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Items: []entity.OrderItem{
			{ProductID: "p1", Name: "Rice", Price: decimal.RequireFromString("2.5"), Qty: 4},
			{ProductID: "p2", Name: "Tea", Price: decimal.NewFromInt(3), Qty: 1},
		},
	}}

	data, err := sheet.NewOrderExporter().ExportOrders(orders)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Orders", "Items"}, f.GetSheetList())

	status, err := f.GetCellValue("Orders", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Out for Delivery", status)

	total, err := f.GetCellValue("Orders", "E2")
	require.NoError(t, err)
	assert.Equal(t, "13", total)

	created, err := f.GetCellValue("Orders", "F2")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01 10:30", created)

	itemRows, err := f.GetRows("Items")
	require.NoError(t, err)
	assert.Len(t, itemRows, 3, "cabecera + dos líneas")
}
