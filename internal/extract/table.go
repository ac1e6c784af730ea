package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// extractCSV parses delimited text and re-serializes it
func extractCSV(doc *Document) (string, error) {
	r := csv.NewReader(bytes.NewReader(stripBOM(doc.Data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to parse CSV: %w", err)
	}
	return serializeTable(rows)
}

// extractSpreadsheet reads the first sheet of an xlsx or xls workbook
func extractSpreadsheet(doc *Document) (string, error) {
	var rows [][]string
	var err error

	switch {
	case bytes.HasPrefix(doc.Data, zipMagic):
		rows, err = readXLSX(doc.Data)
	case bytes.HasPrefix(doc.Data, oleMagic):
		rows, err = readXLS(doc.Data)
	case strings.EqualFold(filepath.Ext(doc.Name), ".xls"):
		rows, err = readXLS(doc.Data)
	default:
		rows, err = readXLSX(doc.Data)
	}
	if err != nil {
		return "", err
	}
	return serializeTable(rows)
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readXLS(data []byte) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = fmt.Errorf("failed to open spreadsheet: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// serializeTable writes rows as CSV text. Blank rows and trailing empty
// columns are dropped and short rows padded, so the same table read from
// CSV or a workbook serializes identically.
func serializeTable(rows [][]string) (string, error) {
	width := 0
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		last := -1
		for i, cell := range row {
			if strings.TrimSpace(cell) != "" {
				last = i
			}
		}
		if last < 0 {
			continue
		}
		if last+1 > width {
			width = last + 1
		}
		kept = append(kept, row)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range kept {
		record := make([]string, width)
		copy(record, row)
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to serialize table: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to serialize table: %w", err)
	}
	return buf.String(), nil
}
