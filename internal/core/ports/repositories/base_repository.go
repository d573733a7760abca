package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction.
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// RepositoryProvider bundles all repository implementations for injection
// into the service layer.
type RepositoryProvider struct {
	TenantRepo  TenantRepositoryFacade
	AccountRepo AccountRepositoryFacade
	VoucherRepo VoucherRepositoryWithTx
	ReportRepo  ReportingRepository
	AssetRepo   AssetRepositoryFacade
	ReconRepo   ReconciliationRepository
	DocRepo     DocumentRepository
	UsageRepo   UsageRepository
}
