package fileio

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"matching-service/internal/matching"

	excelize "github.com/xuri/excelize/v2"
)

// Column header synonyms accepted in supplier price lists. Mixed
// English/Romanian because that is what supplier spreadsheets arrive with.
var (
	nameHeaders     = []string{"name", "product", "product name", "denumire", "nume"}
	priceHeaders    = []string{"price", "pret", "preț", "unit price"}
	currencyHeaders = []string{"currency", "moneda", "valuta"}
	urlHeaders      = []string{"url", "link", "source url"}
)

// ReadSupplierRows parses the first sheet of an .xlsx supplier price list
// into import rows. The first row is the header; name and price columns are
// required, currency and url optional. Rows past maxRows are rejected rather
// than silently truncated.
func ReadSupplierRows(r io.Reader, supplierID uint, source string, maxRows int) ([]matching.SourceRow, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable xlsx file: %v", matching.ErrValidation, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: spreadsheet has no data rows", matching.ErrValidation)
	}
	if maxRows > 0 && len(rows)-1 > maxRows {
		return nil, fmt.Errorf("%w: spreadsheet has %d rows, limit is %d", matching.ErrValidation, len(rows)-1, maxRows)
	}

	nameCol := findColumn(rows[0], nameHeaders)
	priceCol := findColumn(rows[0], priceHeaders)
	currencyCol := findColumn(rows[0], currencyHeaders)
	urlCol := findColumn(rows[0], urlHeaders)
	if nameCol < 0 {
		return nil, fmt.Errorf("%w: no name column in header row", matching.ErrValidation)
	}

	out := make([]matching.SourceRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cell(row, nameCol)
		if name == "" {
			continue
		}
		out = append(out, matching.SourceRow{
			SupplierID: supplierID,
			Name:       name,
			Price:      parsePrice(cell(row, priceCol)),
			Currency:   cell(row, currencyCol),
			URL:        cell(row, urlCol),
			Source:     source,
		})
	}
	return out, nil
}

func findColumn(header []string, synonyms []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, s := range synonyms {
			if h == s {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// parsePrice handles both "1234.56" and the comma decimals common in
// Romanian spreadsheets ("1234,56"). Unparseable prices become 0.
func parsePrice(s string) float64 {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")
	// "1.234.56" after comma replacement: keep only the last dot as decimal
	if strings.Count(s, ".") > 1 {
		last := strings.LastIndex(s, ".")
		s = strings.ReplaceAll(s[:last], ".", "") + s[last:]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
