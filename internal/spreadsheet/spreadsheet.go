// Package spreadsheet reads the provider input file and writes the enriched snapshots.
package spreadsheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"provider-enricher/internal/models"

	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet written to every snapshot.
const SheetName = "Sheet1"

// ReadProviders loads the providers from the first sheet of the workbook at path.
// The first row is the header and must name every input column; other columns are ignored.
func ReadProviders(path string) ([]models.Provider, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: failed to open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet: no sheets found in %s", path)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet: sheet is empty: %s", sheets[0])
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range models.InputColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("spreadsheet: missing column %q", col)
		}
	}

	providers := make([]models.Provider, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		cell := func(col string) string {
			if idx := index[col]; idx < len(row) {
				return row[idx]
			}
			return ""
		}

		id, err := parseID(cell(models.ColumnID))
		if err != nil {
			// Sheet rows are 1-based and the header takes the first one.
			return nil, fmt.Errorf("spreadsheet: row %d: %w", i+2, err)
		}

		providers = append(providers, models.Provider{
			ID:       id,
			Province: cell(models.ColumnProvince),
			City:     cell(models.ColumnCity),
			Name:     cell(models.ColumnName),
			Address:  cell(models.ColumnAddress),
		})
	}

	return providers, nil
}

// WriteRows writes a header of columns followed by each row projected onto them.
func WriteRows(path string, columns []string, rows []models.EnrichedRow) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("spreadsheet: failed to create stream writer: %w", err)
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("spreadsheet: failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("spreadsheet: %w", err)
		}
		if err := sw.SetRow(cell, row.Values(columns)); err != nil {
			return fmt.Errorf("spreadsheet: failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("spreadsheet: failed to flush rows: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("spreadsheet: failed to save %s: %w", path, err)
	}

	return nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseID accepts integers and integral floats such as "12" or "12.0". A blank id is NULL.
func parseID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return &id, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return nil, fmt.Errorf("invalid id %q", raw)
	}
	id := int64(f)
	return &id, nil
}
