package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
)

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so aggregation
// helpers can run inside or outside a snapshot transaction.
type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTrialBalanceData sums debits and credits per account up to asOf.
// Accounts with no entries are excluded; a zero row carries no information.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(e.debit), 0), COALESCE(SUM(e.credit), 0)
		FROM accounts a
		JOIN ledger_entries e ON e.account_id = a.account_id AND e.tenant_id = a.tenant_id
		WHERE a.tenant_id = $1 AND e.entry_date <= $2
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;`
	rows, err := r.Pool.Query(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}

// beginSnapshot opens the read-only repeatable-read transaction every
// multi-query statement runs in, so all of its aggregations observe the same
// committed state regardless of concurrent posting activity.
func (r *PgxReportingRepository) beginSnapshot(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin report snapshot", err)
	}
	return tx, nil
}

// queryAccountAmounts runs an aggregation producing (account_id, code, name,
// net_amount) rows.
func (r *PgxReportingRepository) queryAccountAmounts(ctx context.Context, q rowQuerier, query string, args ...interface{}) ([]domain.AccountAmount, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account amounts", err)
	}
	defer rows.Close()

	result := []domain.AccountAmount{}
	for rows.Next() {
		var aa domain.AccountAmount
		if err := rows.Scan(&aa.AccountID, &aa.Code, &aa.Name, &aa.NetAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account amount row", err)
		}
		result = append(result, aa)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account amount rows", err)
	}
	return result, nil
}

// GetProfitAndLossData returns net revenue and expense movements in range.
// Revenue accounts accumulate on the credit side, expenses on the debit side.
func (r *PgxReportingRepository) GetProfitAndLossData(ctx context.Context, tenantID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	tx, err := r.beginSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	revenueQuery := `
		SELECT a.account_id, a.code, a.name, COALESCE(SUM(e.credit - e.debit), 0)
		FROM accounts a
		JOIN ledger_entries e ON e.account_id = a.account_id AND e.tenant_id = a.tenant_id
		WHERE a.tenant_id = $1 AND a.account_type = 'REVENUE'
		  AND e.entry_date >= $2 AND e.entry_date <= $3
		GROUP BY a.account_id, a.code, a.name
		ORDER BY a.code;`
	revenue, err := r.queryAccountAmounts(ctx, tx, revenueQuery, tenantID, from, to)
	if err != nil {
		return nil, nil, err
	}

	expenseQuery := `
		SELECT a.account_id, a.code, a.name, COALESCE(SUM(e.debit - e.credit), 0)
		FROM accounts a
		JOIN ledger_entries e ON e.account_id = a.account_id AND e.tenant_id = a.tenant_id
		WHERE a.tenant_id = $1 AND a.account_type = 'EXPENSE'
		  AND e.entry_date >= $2 AND e.entry_date <= $3
		GROUP BY a.account_id, a.code, a.name
		ORDER BY a.code;`
	expenses, err := r.queryAccountAmounts(ctx, tx, expenseQuery, tenantID, from, to)
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to close report snapshot", err)
	}
	return revenue, expenses, nil
}

// GetBalanceSheetData returns cumulative balances as of the date, plus the
// earnings accumulated in revenue and expense accounts. The earnings figure
// becomes a computed equity row so the sheet balances exactly.
func (r *PgxReportingRepository) GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, domain.AccountAmount, error) {
	tx, err := r.beginSnapshot(ctx)
	if err != nil {
		return nil, nil, nil, domain.AccountAmount{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	assetQuery := `
		SELECT a.account_id, a.code, a.name, COALESCE(SUM(e.debit - e.credit), 0)
		FROM accounts a
		JOIN ledger_entries e ON e.account_id = a.account_id AND e.tenant_id = a.tenant_id
		WHERE a.tenant_id = $1 AND a.account_type = 'ASSET' AND e.entry_date <= $2
		GROUP BY a.account_id, a.code, a.name
		ORDER BY a.code;`
	assets, err := r.queryAccountAmounts(ctx, tx, assetQuery, tenantID, asOf)
	if err != nil {
		return nil, nil, nil, domain.AccountAmount{}, err
	}

	creditSideQuery := `
		SELECT a.account_id, a.code, a.name, COALESCE(SUM(e.credit - e.debit), 0)
		FROM accounts a
		JOIN ledger_entries e ON e.account_id = a.account_id AND e.tenant_id = a.tenant_id
		WHERE a.tenant_id = $1 AND a.account_type = $2 AND e.entry_date <= $3
		GROUP BY a.account_id, a.code, a.name
		ORDER BY a.code;`
	liabilities, err := r.queryAccountAmounts(ctx, tx, creditSideQuery, tenantID, domain.Liability, asOf)
	if err != nil {
		return nil, nil, nil, domain.AccountAmount{}, err
	}
	equity, err := r.queryAccountAmounts(ctx, tx, creditSideQuery, tenantID, domain.Equity, asOf)
	if err != nil {
		return nil, nil, nil, domain.AccountAmount{}, err
	}

	earningsQuery := `
		SELECT COALESCE(SUM(e.credit - e.debit), 0)
		FROM accounts a
		JOIN ledger_entries e ON e.account_id = a.account_id AND e.tenant_id = a.tenant_id
		WHERE a.tenant_id = $1 AND a.account_type IN ('REVENUE', 'EXPENSE') AND e.entry_date <= $2;`
	var net decimal.Decimal
	if err := tx.QueryRow(ctx, earningsQuery, tenantID, asOf).Scan(&net); err != nil {
		return nil, nil, nil, domain.AccountAmount{}, apperrors.NewAppError(500, "failed to query earnings", err)
	}
	earnings := domain.AccountAmount{Name: "Current period earnings", NetAmount: net}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, nil, domain.AccountAmount{}, apperrors.NewAppError(500, "failed to close report snapshot", err)
	}
	return assets, liabilities, equity, earnings, nil
}

// GetAgingData buckets open source documents by days past due as of asOf.
// Receivables read invoices, payables read bills.
func (r *PgxReportingRepository) GetAgingData(ctx context.Context, tenantID string, asOf time.Time, side domain.AgingSide) ([]domain.AgingRow, error) {
	docType := domain.DocInvoice
	if side == domain.AgingPayables {
		docType = domain.DocBill
	}

	query := `
		SELECT counterparty,
		       COALESCE(SUM(CASE WHEN due_date >= $3 THEN total_amount - paid_amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN due_date < $3 AND due_date >= $3::date - 30 THEN total_amount - paid_amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN due_date < $3::date - 30 AND due_date >= $3::date - 60 THEN total_amount - paid_amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN due_date < $3::date - 60 AND due_date >= $3::date - 90 THEN total_amount - paid_amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN due_date < $3::date - 90 THEN total_amount - paid_amount ELSE 0 END), 0),
		       COALESCE(SUM(total_amount - paid_amount), 0)
		FROM source_documents
		WHERE tenant_id = $1 AND doc_type = $2
		  AND issue_date <= $3 AND total_amount > paid_amount
		GROUP BY counterparty
		ORDER BY counterparty;`
	rows, err := r.Pool.Query(ctx, query, tenantID, docType, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query aging data", err)
	}
	defer rows.Close()

	result := []domain.AgingRow{}
	for rows.Next() {
		var row domain.AgingRow
		if err := rows.Scan(&row.Counterparty, &row.Current, &row.Days1To30, &row.Days31To60, &row.Days61To90, &row.Over90, &row.Total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan aging row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating aging rows", err)
	}
	return result, nil
}
