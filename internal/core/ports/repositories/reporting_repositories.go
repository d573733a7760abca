package repositories

import (
	"context"
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
)

// ReportingRepository defines the read-only aggregation queries behind the
// statement derivation engine. Nothing here is cached or persisted; every
// call recomputes from committed ledger entries inside a consistent snapshot.
type ReportingRepository interface {
	// GetTrialBalanceData sums debits and credits per account up to asOf.
	GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData returns net revenue and expense account movements
	// within the range.
	GetProfitAndLossData(ctx context.Context, tenantID string, from, to time.Time) (revenue []domain.AccountAmount, expenses []domain.AccountAmount, err error)

	// GetBalanceSheetData returns cumulative asset, liability and equity
	// balances as of the date, plus the net earnings accumulated in revenue
	// and expense accounts up to that date.
	GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, earnings domain.AccountAmount, err error)

	// GetAgingData buckets open source documents of the given side by days
	// past due as of asOf.
	GetAgingData(ctx context.Context, tenantID string, asOf time.Time, side domain.AgingSide) ([]domain.AgingRow, error)
}
