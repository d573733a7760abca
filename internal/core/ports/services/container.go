package services

// ServiceContainer bundles all service facades for injection into the HTTP
// layer.
type ServiceContainer struct {
	Tenant         TenantSvcFacade
	Account        AccountSvcFacade
	Posting        PostingSvcFacade
	Producer       ProducerSvcFacade
	Reporting      ReportingSvcFacade
	Depreciation   DepreciationSvcFacade
	Reconciliation ReconciliationSvcFacade
	Document       DocumentSvcFacade
	Usage          UsageReaderSvc
}
