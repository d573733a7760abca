package services

import (
	"context"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/tenbooks/tenbooks_app/internal/dto"
)

// DepreciationSvcFacade is the scheduler that turns fixed-asset schedules
// into depreciation postings.
type DepreciationSvcFacade interface {
	// CreateAsset registers a new fixed asset.
	CreateAsset(ctx context.Context, tenant *domain.Tenant, req dto.CreateAssetRequest, creatorUserID string) (*domain.FixedAsset, error)

	// ListAssets lists the tenant's active fixed assets.
	ListAssets(ctx context.Context, tenant *domain.Tenant) ([]domain.FixedAsset, error)

	// RunDepreciation posts the period's depreciation for every active
	// asset that is due. A given asset-period pair produces at most one
	// posting; re-running a period is a no-op for already-posted assets.
	// Period is formatted YYYY-MM.
	RunDepreciation(ctx context.Context, tenant *domain.Tenant, period string, userID string) (*dto.DepreciationRunResult, error)
}

// ReconciliationSvcFacade matches ledger entries against bank statement
// snapshots.
type ReconciliationSvcFacade interface {
	// Reconcile matches the account's unreconciled entries against the
	// statement snapshot. On an exact match a batch is written and entries
	// are stamped; on a mismatch the discrepancy is reported and nothing is
	// written.
	Reconcile(ctx context.Context, tenant *domain.Tenant, accountID string, snapshot domain.StatementSnapshot, userID string) (*domain.ReconciliationResult, error)
}
