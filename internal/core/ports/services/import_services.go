package services

import (
	"context"
	"io"

	"github.com/ryumonX/uangku/internal/dto"
)

// ImportSvcFacade defines the bulk spreadsheet import operations.
type ImportSvcFacade interface {
	// Preview parses an uploaded workbook and returns the normalized rows
	// without persisting anything.
	Preview(ctx context.Context, r io.Reader) (*dto.ImportPreviewResponse, error)
	// Commit inserts the staged rows into the given country ledger in
	// sequential fixed-size batches. A failing batch aborts the remainder;
	// earlier batches stay committed and the returned response covers them.
	Commit(ctx context.Context, userID string, req dto.ImportRequest) (*dto.ImportResponse, error)
}

// InvoiceSvcFacade stores an uploaded invoice file and resolves its public URL.
type InvoiceSvcFacade interface {
	UploadInvoice(ctx context.Context, originalFilename, contentType string, r io.Reader) (string, error)
}
