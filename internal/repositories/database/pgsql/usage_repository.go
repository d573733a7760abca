package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
)

type PgxUsageRepository struct {
	BaseRepository
}

func newPgxUsageRepository(pool *pgxpool.Pool) portsrepo.UsageRepository {
	return &PgxUsageRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UsageRepository = (*PgxUsageRepository)(nil)

// GetUsageSummary counts accounts, vouchers and entries for the tenant.
// Voucher and entry counts are restricted to the period; the account count
// is a point-in-time total.
func (r *PgxUsageRepository) GetUsageSummary(ctx context.Context, tenantID string, from, to time.Time) (*domain.UsageSummary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM accounts WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM vouchers WHERE tenant_id = $1 AND voucher_date >= $2 AND voucher_date <= $3),
			(SELECT COUNT(*) FROM ledger_entries WHERE tenant_id = $1 AND entry_date >= $2 AND entry_date <= $3);`
	summary := &domain.UsageSummary{TenantID: tenantID, PeriodFrom: from, PeriodTo: to}
	err := r.Pool.QueryRow(ctx, query, tenantID, from, to).Scan(
		&summary.AccountCount,
		&summary.VoucherCount,
		&summary.EntryCount,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query usage summary for tenant "+tenantID, err)
	}
	return summary, nil
}
