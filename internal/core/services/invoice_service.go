package services

import (
	"context"
	"fmt"
	"io"

	portsrepo "github.com/ryumonX/uangku/internal/core/ports/repositories"
	portssvc "github.com/ryumonX/uangku/internal/core/ports/services"
	"github.com/ryumonX/uangku/internal/utils"
)

type invoiceService struct {
	storage portsrepo.InvoiceStorage
}

// NewInvoiceService creates the invoice upload service backed by the given
// object storage.
func NewInvoiceService(storage portsrepo.InvoiceStorage) portssvc.InvoiceSvcFacade {
	return &invoiceService{storage: storage}
}

// UploadInvoice stores the uploaded file under a collision-resistant object
// name and returns the public URL to record on the transaction.
func (s *invoiceService) UploadInvoice(ctx context.Context, originalFilename, contentType string, r io.Reader) (string, error) {
	objectName, err := utils.NewInvoiceObjectName(originalFilename)
	if err != nil {
		return "", err
	}

	url, err := s.storage.Upload(ctx, objectName, contentType, r)
	if err != nil {
		return "", fmt.Errorf("failed to upload invoice: %w", err)
	}
	return url, nil
}
