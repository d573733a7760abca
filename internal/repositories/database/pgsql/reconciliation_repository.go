package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepository {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReconciliationRepository = (*PgxReconciliationRepository)(nil)

// ListUnreconciledEntries returns entries on the account dated at or before
// upTo that are not attached to any batch, oldest first.
func (r *PgxReconciliationRepository) ListUnreconciledEntries(ctx context.Context, tenantID string, accountID string, upTo time.Time) ([]domain.LedgerEntry, error) {
	query := `SELECT` + entryColumns + `
		FROM ledger_entries
		WHERE tenant_id = $1 AND account_id = $2 AND entry_date <= $3
		  AND reconciliation_batch_id IS NULL
		ORDER BY entry_date, created_at;`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountID, upTo)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unreconciled entries for account "+accountID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating unreconciled entry rows", err)
	}
	return entries, nil
}

// SumReconciledNet returns the net amount of all entries on the account
// already attached to a batch.
func (r *PgxReconciliationRepository) SumReconciledNet(ctx context.Context, tenantID string, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit - credit), 0)
		FROM ledger_entries
		WHERE tenant_id = $1 AND account_id = $2 AND reconciliation_batch_id IS NOT NULL;`
	var net decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID).Scan(&net); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum reconciled net for account "+accountID, err)
	}
	return net, nil
}

// SaveBatchAndMarkEntries persists the batch and stamps the matched entries
// with its ID in one transaction.
func (r *PgxReconciliationRepository) SaveBatchAndMarkEntries(ctx context.Context, batch domain.ReconciliationBatch, entryIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batchQuery := `
		INSERT INTO reconciliation_batches (
			batch_id, tenant_id, account_id, statement_date, statement_balance, matched_total,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err = tx.Exec(ctx, batchQuery,
		batch.BatchID,
		batch.TenantID,
		batch.AccountID,
		batch.StatementDate,
		batch.StatementBalance,
		batch.MatchedTotal,
		batch.CreatedAt,
		batch.CreatedBy,
		batch.LastUpdatedAt,
		batch.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert reconciliation batch "+batch.BatchID, err)
	}

	markQuery := `
		UPDATE ledger_entries
		SET reconciliation_batch_id = $3, reconciled_at = $4
		WHERE tenant_id = $1 AND entry_id = ANY($2) AND reconciliation_batch_id IS NULL;`
	tag, err := tx.Exec(ctx, markQuery, batch.TenantID, entryIDs, batch.BatchID, batch.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entries for batch "+batch.BatchID, err)
	}
	// A shortfall means some entry was matched by a concurrent run; the
	// statement no longer describes the account and the whole batch aborts.
	if tag.RowsAffected() != int64(len(entryIDs)) {
		return apperrors.ErrConcurrentModification
	}

	return r.Commit(ctx, tx)
}

// FindBatchByID retrieves a reconciliation batch within a tenant.
func (r *PgxReconciliationRepository) FindBatchByID(ctx context.Context, tenantID string, batchID string) (*domain.ReconciliationBatch, error) {
	query := `
		SELECT batch_id, tenant_id, account_id, statement_date, statement_balance, matched_total,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM reconciliation_batches
		WHERE tenant_id = $1 AND batch_id = $2;`
	var b domain.ReconciliationBatch
	err := r.Pool.QueryRow(ctx, query, tenantID, batchID).Scan(
		&b.BatchID,
		&b.TenantID,
		&b.AccountID,
		&b.StatementDate,
		&b.StatementBalance,
		&b.MatchedTotal,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reconciliation batch "+batchID, err)
	}
	return &b, nil
}
