package services

import (
	portsrepo "github.com/ryumonX/uangku/internal/core/ports/repositories"
	portssvc "github.com/ryumonX/uangku/internal/core/ports/services"
	"github.com/ryumonX/uangku/internal/platform/config"
)

// NewServiceContainer creates a service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, invoiceStorage portsrepo.InvoiceStorage) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)
	container.Transaction = NewTransactionService(repos.TransactionRepo)
	container.Import = NewImportService(repos.TransactionRepo, cfg.ImportBatchSize)
	container.Invoice = NewInvoiceService(invoiceStorage)

	return container
}
