package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ryumonX/uangku/internal/core/domain"
	portsrepo "github.com/ryumonX/uangku/internal/core/ports/repositories"
	portssvc "github.com/ryumonX/uangku/internal/core/ports/services"
	"github.com/ryumonX/uangku/internal/dto"
	"github.com/ryumonX/uangku/internal/importer"
	"github.com/ryumonX/uangku/internal/middleware"
)

type importService struct {
	txnRepo   portsrepo.TransactionRepository
	batchSize int
}

// NewImportService creates the bulk import service. batchSize bounds how many
// rows go into one insert; values below 1 fall back to 200.
func NewImportService(txnRepo portsrepo.TransactionRepository, batchSize int) portssvc.ImportSvcFacade {
	if batchSize < 1 {
		batchSize = 200
	}
	return &importService{txnRepo: txnRepo, batchSize: batchSize}
}

// Preview parses an uploaded workbook and returns the normalized rows without
// persisting anything. Malformed cells degrade to zero values; no row is
// rejected here.
func (s *importService) Preview(ctx context.Context, r io.Reader) (*dto.ImportPreviewResponse, error) {
	raw, err := importer.ReadWorkbook(r)
	if err != nil {
		return nil, err
	}
	resp := dto.ToImportPreviewResponse(importer.NormalizeRows(raw))
	return &resp, nil
}

// Commit inserts the staged rows into the given country ledger in sequential
// fixed-size batches. Batches run strictly one after another; a failing batch
// aborts the remainder while everything already committed stays committed, and
// the returned response reports that partial progress alongside the error.
func (s *importService) Commit(ctx context.Context, userID string, req dto.ImportRequest) (*dto.ImportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	txns := make([]domain.Transaction, len(req.Rows))
	for i, row := range req.Rows {
		txns[i] = s.rowToTransaction(userID, req.Country, row, now)
	}

	resp := &dto.ImportResponse{Batches: []dto.ImportBatchProgress{}}
	total := len(txns)

	for start, batchNo := 0, 1; start < total; start, batchNo = start+s.batchSize, batchNo+1 {
		end := start + s.batchSize
		if end > total {
			end = total
		}
		batch := txns[start:end]

		if err := s.txnRepo.SaveTransactions(ctx, batch); err != nil {
			logger.ErrorContext(ctx, "import batch failed",
				slog.Int("batch", batchNo),
				slog.Int("inserted", resp.Inserted),
				slog.String("error", err.Error()),
			)
			return resp, fmt.Errorf("import batch %d failed after %d rows: %w", batchNo, resp.Inserted, err)
		}

		resp.Inserted += len(batch)
		resp.Batches = append(resp.Batches, dto.ImportBatchProgress{
			Batch:    batchNo,
			Rows:     len(batch),
			Progress: progressPercent(resp.Inserted, total),
		})
	}

	logger.InfoContext(ctx, "import committed",
		slog.Int("rows", resp.Inserted),
		slog.Int("batches", len(resp.Batches)),
		slog.String("country", req.Country),
	)
	return resp, nil
}

// rowToTransaction turns one staged row into a ledger entry for the target
// country. A row whose date never parsed gets today's date; a row with no
// classified type stays "lainnya".
func (s *importService) rowToTransaction(userID, country string, row dto.ImportRowRequest, now time.Time) domain.Transaction {
	date := now.UTC().Truncate(24 * time.Hour)
	if row.Date != "" {
		if parsed, err := time.Parse(dateLayout, row.Date); err == nil {
			date = parsed
		}
	}

	txnType := domain.TransactionType(row.Type)
	if !txnType.IsValid() {
		txnType = domain.Unclassified
	}

	return domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Date:          date,
		Amount:        row.Amount,
		Type:          txnType,
		Category:      row.Category,
		Pos:           row.Pos,
		Country:       country,
		Note:          row.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
}

func progressPercent(done, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
