package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ryumonX/uangku/internal/importer"
)

// ImportRowRequest is one staged row submitted for committal. Date may be
// empty when no representation in the source row parsed; the import service
// defaults it to today at save time.
type ImportRowRequest struct {
	Date     string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Note     string          `json:"note"`
	Pos      string          `json:"pos"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type" binding:"omitempty,oneof=pemasukan pengeluaran lainnya"`
}

// ImportRequest commits a previously previewed batch of rows into one
// country-program ledger.
type ImportRequest struct {
	Country string             `json:"country" binding:"required"`
	Rows    []ImportRowRequest `json:"rows" binding:"required,min=1,dive"`
}

// ImportBatchProgress reports one committed insert batch.
type ImportBatchProgress struct {
	Batch    int `json:"batch"`
	Rows     int `json:"rows"`
	Progress int `json:"progress"` // cumulative percent after this batch
}

// ImportResponse reports the outcome of a bulk import. On a mid-import
// failure Batches covers only the batches that committed.
type ImportResponse struct {
	Inserted int                   `json:"inserted"`
	Batches  []ImportBatchProgress `json:"batches"`
}

// ImportPreviewRow is the API shape of one normalized spreadsheet row.
type ImportPreviewRow struct {
	Date     *string         `json:"date"` // null when the source cell did not parse
	Note     string          `json:"note"`
	Pos      string          `json:"pos"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
}

// ImportPreviewResponse is the staged preview returned before committal.
type ImportPreviewResponse struct {
	Rows  []ImportPreviewRow `json:"rows"`
	Count int                `json:"count"`
}

// ToImportPreviewResponse converts normalized rows to the preview DTO.
func ToImportPreviewResponse(rows []importer.NormalizedRow) ImportPreviewResponse {
	out := make([]ImportPreviewRow, len(rows))
	for i, r := range rows {
		var date *string
		if r.Date != nil {
			s := r.Date.Format(dateLayout)
			date = &s
		}
		out[i] = ImportPreviewRow{
			Date:     date,
			Note:     r.Note,
			Pos:      r.Pos,
			Category: r.Category,
			Amount:   r.Amount,
			Type:     string(r.Type),
		}
	}
	return ImportPreviewResponse{Rows: out, Count: len(out)}
}
