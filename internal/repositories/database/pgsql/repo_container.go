package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TenantRepo:  newPgxTenantRepository(dbPool),
		AccountRepo: newPgxAccountRepository(dbPool),
		VoucherRepo: newPgxVoucherRepository(dbPool),
		ReportRepo:  newPgxReportingRepository(dbPool),
		AssetRepo:   newPgxAssetRepository(dbPool),
		ReconRepo:   newPgxReconciliationRepository(dbPool),
		DocRepo:     newPgxDocumentRepository(dbPool),
		UsageRepo:   newPgxUsageRepository(dbPool),
	}
}
