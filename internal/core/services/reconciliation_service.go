package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
)

// ErrNotReconcilable indicates the target account cannot be reconciled
// against bank statements (inactive, wrong type, or not found).
var ErrNotReconcilable = errors.New("account cannot be reconciled")

// reconciliationService matches ledger entries against bank statement
// snapshots. A run either explains the statement's closing balance exactly
// and stamps the matched entries, or it writes nothing and reports the
// discrepancy. Fixing a discrepancy is a posting concern (bank charges,
// missed transfers), never a mutation of already-matched entries.
type reconciliationService struct {
	BaseService
	reconRepo  portsrepo.ReconciliationRepository
	accountSvc portssvc.AccountSvcFacade
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(rr portsrepo.ReconciliationRepository, as portssvc.AccountSvcFacade) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{reconRepo: rr, accountSvc: as}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// Reconcile matches the account's unreconciled entries dated at or before
// the statement date against the snapshot's closing balance.
func (s *reconciliationService) Reconcile(ctx context.Context, tenant *domain.Tenant, accountID string, snapshot domain.StatementSnapshot, userID string) (*domain.ReconciliationResult, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, tenant, accountID)
	if err != nil {
		return nil, err
	}
	if account.AccountType != domain.Asset || !account.IsActive {
		return nil, fmt.Errorf("%w: %s is not an active asset account", ErrNotReconcilable, account.Name)
	}

	reconciledBefore, err := s.reconRepo.SumReconciledNet(ctx, tenant.TenantID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum reconciled balance",
			slog.String("tenant_id", tenant.TenantID), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to sum reconciled balance: %w", err)
	}

	entries, err := s.reconRepo.ListUnreconciledEntries(ctx, tenant.TenantID, accountID, snapshot.StatementDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unreconciled entries",
			slog.String("tenant_id", tenant.TenantID), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list unreconciled entries: %w", err)
	}

	matchedTotal := decimal.Zero
	entryIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		matchedTotal = matchedTotal.Add(e.NetAmount())
		entryIDs = append(entryIDs, e.EntryID)
	}

	result := &domain.ReconciliationResult{
		MatchedEntryIDs:  entryIDs,
		MatchedTotal:     matchedTotal,
		ReconciledBefore: reconciledBefore,
		Discrepancy:      snapshot.ClosingBalance.Sub(reconciledBefore.Add(matchedTotal)),
	}

	if !result.Discrepancy.IsZero() {
		s.LogWarn(ctx, "Reconciliation discrepancy, nothing written",
			slog.String("tenant_id", tenant.TenantID),
			slog.String("account_id", accountID),
			slog.String("statement_balance", snapshot.ClosingBalance.String()),
			slog.String("discrepancy", result.Discrepancy.String()))
		return result, nil
	}

	now := time.Now()
	batch := domain.ReconciliationBatch{
		BatchID:          uuid.NewString(),
		TenantID:         tenant.TenantID,
		AccountID:        accountID,
		StatementDate:    snapshot.StatementDate,
		StatementBalance: snapshot.ClosingBalance,
		MatchedTotal:     matchedTotal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.reconRepo.SaveBatchAndMarkEntries(ctx, batch, entryIDs); err != nil {
		s.LogError(ctx, err, "Failed to save reconciliation batch",
			slog.String("tenant_id", tenant.TenantID), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save reconciliation batch: %w", err)
	}

	result.Batch = &batch
	s.LogInfo(ctx, "Account reconciled",
		slog.String("tenant_id", tenant.TenantID),
		slog.String("account_id", accountID),
		slog.String("batch_id", batch.BatchID),
		slog.Int("entries", len(entryIDs)))
	return result, nil
}
