package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook parses an uploaded .xlsx workbook and returns the rows of its
// first sheet as header → raw cell value maps. Raw cell values are requested
// so date cells arrive as their underlying day-count serials rather than as
// display-formatted strings.
//
// The first row is treated as headers. A workbook whose first sheet has no
// data rows is an error; nothing is staged from it.
func ReadWorkbook(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}

	headers := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			header = strings.TrimSpace(header)
			if header == "" {
				continue
			}
			// GetRows drops trailing empty cells; pad them back as blanks.
			if i < len(cells) {
				row[header] = cells[i]
			} else {
				row[header] = ""
			}
		}
		out = append(out, row)
	}

	return out, nil
}

// NormalizeRows maps an entire uploaded table through NormalizeRow, producing
// the preview list shown before committal. Rows are never deduplicated or
// cross-validated against existing ledger entries.
func NormalizeRows(rows []map[string]string) []NormalizedRow {
	out := make([]NormalizedRow, len(rows))
	for i, row := range rows {
		out[i] = NormalizeRow(row)
	}
	return out
}
