package services

import (
	"context"
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
)

// ReportingSvcFacade defines the statement derivation operations. All are
// pure reads over committed entries, recomputed on every call.
type ReportingSvcFacade interface {
	// TrialBalance sums debits and credits per account up to asOf. A
	// nonzero net across all accounts is an integrity alarm
	// (ErrBooksUnbalanced), never silently repaired.
	TrialBalance(ctx context.Context, tenant *domain.Tenant, asOf time.Time) (*domain.TrialBalanceReport, error)

	// ProfitAndLoss sums revenue and expense movements within the range.
	ProfitAndLoss(ctx context.Context, tenant *domain.Tenant, from, to time.Time) (*domain.PAndLReport, error)

	// BalanceSheet reports cumulative asset, liability and equity balances
	// as of the date; assets must equal liabilities plus equity.
	BalanceSheet(ctx context.Context, tenant *domain.Tenant, asOf time.Time) (*domain.BalanceSheetReport, error)

	// AgingReport buckets open receivables or payables by days past due.
	AgingReport(ctx context.Context, tenant *domain.Tenant, asOf time.Time, side domain.AgingSide) (*domain.AgingReport, error)
}
