package repositories

import (
	"context"
	"io"
)

// InvoiceStorage is the outbound port to the object store holding invoice
// files. Upload stores the object and returns its public retrieval URL; the
// two steps are sequential and a failure at either aborts the caller's save.
type InvoiceStorage interface {
	Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error)
}
