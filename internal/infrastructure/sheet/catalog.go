package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

var _ ports.CatalogParser = (*CatalogParser)(nil)

// ErrUnsupportedFormat el archivo no es CSV ni XLSX.
var ErrUnsupportedFormat = errors.New("formato no soportado (use .csv o .xlsx)")

const maxCatalogBytes = 10 << 20

// Alias de cabecera aceptados, en orden de preferencia.
var (
	nameHeaders  = []string{"name", "product"}
	priceHeaders = []string{"price"}
	stockHeaders = []string{"stock", "qty"}
	skuHeaders   = []string{"sku", "id"}
)

// CatalogParser lee catálogos de productos desde CSV (UTF-8 o Windows-1252) o XLSX.
// La primera fila es la cabecera; las filas sin nombre se descartan.
type CatalogParser struct{}

// NewCatalogParser construye el parser.
func NewCatalogParser() *CatalogParser { return &CatalogParser{} }

// ParseCatalog detecta el formato por extensión.
func (p *CatalogParser) ParseCatalog(filename string, r io.Reader) ([]ports.CatalogRow, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("sheet: leer archivo: %w", err)
	}
	var records [][]string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		records, err = readCSV(raw)
	case ".xlsx":
		records, err = readXLSX(raw)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return toRows(records), nil
}

func readCSV(raw []byte) ([][]string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		// Exportaciones de Excel en Windows suelen venir en cp1252.
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	}
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("sheet: CSV inválido: %w", err)
	}
	return records, nil
}

func readXLSX(raw []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("sheet: XLSX inválido: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("sheet: leer hoja %q: %w", sheets[0], err)
	}
	return rows, nil
}

func toRows(records [][]string) []ports.CatalogRow {
	if len(records) < 2 {
		return nil
	}
	idx := headerIndex(records[0])
	nameCol := lookup(idx, nameHeaders)
	if nameCol < 0 {
		return nil
	}
	priceCol := lookup(idx, priceHeaders)
	stockCol := lookup(idx, stockHeaders)
	skuCol := lookup(idx, skuHeaders)

	out := make([]ports.CatalogRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		name := cell(rec, nameCol)
		if name == "" {
			continue
		}
		out = append(out, ports.CatalogRow{
			Line: i + 2,
			SKU:  cell(rec, skuCol),
			Input: entity.ProductInput{
				Name:  name,
				Price: parsePrice(cell(rec, priceCol)),
				Stock: parseStock(cell(rec, stockCol)),
			},
		})
	}
	return out
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

func lookup(idx map[string]int, names []string) int {
	for _, n := range names {
		if i, ok := idx[n]; ok {
			return i
		}
	}
	return -1
}

func cell(rec []string, col int) string {
	if col < 0 || col >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[col])
}

// parsePrice valor inválido o vacío = 0.
func parsePrice(s string) decimal.Decimal {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func parseStock(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	if d, err := decimal.NewFromString(s); err == nil && !d.IsNegative() {
		return int(d.IntPart())
	}
	return 0
}
