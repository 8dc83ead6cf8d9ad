// Package gcs stores uploaded invoice files in a Google Cloud Storage bucket.
// It assumes Application Default Credentials are configured.
package gcs

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"

	portsrepo "github.com/ryumonX/uangku/internal/core/ports/repositories"
)

const uploadTimeout = 2 * time.Minute

type InvoiceStore struct {
	client *storage.Client
	bucket string
}

var _ portsrepo.InvoiceStorage = (*InvoiceStore)(nil)

func NewInvoiceStore(ctx context.Context, bucket string) (*InvoiceStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &InvoiceStore{client: client, bucket: bucket}, nil
}

// Upload streams r into the bucket under objectName and returns the public
// object URL. The object is world-readable so the stored URL can be opened
// straight from the ledger.
func (s *InvoiceStore) Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy invoice to storage writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize invoice upload: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName), nil
}

func (s *InvoiceStore) Close() error {
	return s.client.Close()
}
