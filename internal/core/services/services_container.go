package services

import (
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
)

// NewServiceContainer creates a service container with properly initialized
// dependencies. The posting service is built first; every producer and
// scheduler funnels its ledger writes through it.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Tenant = NewTenantService(repos.TenantRepo)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Posting = NewPostingService(repos.VoucherRepo, container.Account, NewPostingMetrics())
	container.Producer = NewProducerService(container.Posting, container.Account)
	container.Reporting = NewReportingService(repos.ReportRepo)
	container.Depreciation = NewDepreciationService(repos.AssetRepo, repos.VoucherRepo, container.Account, container.Posting)
	container.Reconciliation = NewReconciliationService(repos.ReconRepo, container.Account)
	container.Document = NewDocumentService(repos.DocRepo)
	container.Usage = NewUsageService(repos.UsageRepo)

	return container
}
