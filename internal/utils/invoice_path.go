package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// invoicePrefix namespaces every uploaded proof-of-transaction object.
const invoicePrefix = "invoices"

// NewInvoiceObjectName builds a collision-resistant object name for an
// uploaded invoice file: the fixed prefix, a millisecond timestamp, a random
// suffix, and the original file extension.
func NewInvoiceObjectName(originalFilename string) (string, error) {
	suffix, err := GenerateSecureRandomString(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate invoice name suffix: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s/%d-%s%s", invoicePrefix, time.Now().UnixMilli(), suffix, ext), nil
}
