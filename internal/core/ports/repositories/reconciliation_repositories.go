package repositories

import (
	"context"
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationRepository defines persistence operations for bank
// reconciliation.
type ReconciliationRepository interface {
	// ListUnreconciledEntries returns entries on the account dated at or
	// before upTo that are not yet attached to any batch, oldest first.
	ListUnreconciledEntries(ctx context.Context, tenantID string, accountID string, upTo time.Time) ([]domain.LedgerEntry, error)

	// SumReconciledNet returns the net (debit minus credit) amount of all
	// entries on the account already attached to a batch.
	SumReconciledNet(ctx context.Context, tenantID string, accountID string) (decimal.Decimal, error)

	// SaveBatchAndMarkEntries persists the batch and stamps the matched
	// entries with its ID in one transaction. Attachment is permanent.
	SaveBatchAndMarkEntries(ctx context.Context, batch domain.ReconciliationBatch, entryIDs []string) error

	// FindBatchByID retrieves a reconciliation batch within a tenant.
	FindBatchByID(ctx context.Context, tenantID string, batchID string) (*domain.ReconciliationBatch, error)
}
