package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
	"github.com/tenbooks/tenbooks_app/internal/utils/pagination"
)

type PgxVoucherRepository struct {
	BaseRepository
}

func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryWithTx {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VoucherRepositoryWithTx = (*PgxVoucherRepository)(nil)

const voucherColumns = `
	voucher_id, tenant_id, voucher_number, voucher_date, description, reference,
	source_module, source_doc_type, source_doc_id, status, amount,
	original_voucher_id, reversing_voucher_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanVoucher(row pgx.Row) (*domain.JournalVoucher, error) {
	var v domain.JournalVoucher
	var docType, docID sql.NullString
	var originalID, reversingID sql.NullString
	err := row.Scan(
		&v.VoucherID,
		&v.TenantID,
		&v.VoucherNumber,
		&v.Date,
		&v.Description,
		&v.Reference,
		&v.SourceModule,
		&docType,
		&docID,
		&v.Status,
		&v.Amount,
		&originalID,
		&reversingID,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan voucher row", err)
	}
	if docType.Valid {
		v.SourceDoc = domain.DocumentRef{Type: domain.DocumentType(docType.String), ID: docID.String}
	}
	if originalID.Valid {
		v.OriginalVoucherID = &originalID.String
	}
	if reversingID.Valid {
		v.ReversingVoucherID = &reversingID.String
	}
	return &v, nil
}

// FindVoucherByID retrieves a voucher within a tenant.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, tenantID string, voucherID string) (*domain.JournalVoucher, error) {
	query := `SELECT` + voucherColumns + ` FROM vouchers WHERE tenant_id = $1 AND voucher_id = $2;`
	return scanVoucher(r.Pool.QueryRow(ctx, query, tenantID, voucherID))
}

// FindVoucherByReference retrieves a voucher by external reference within a
// tenant and source module.
func (r *PgxVoucherRepository) FindVoucherByReference(ctx context.Context, tenantID string, module domain.SourceModule, reference string) (*domain.JournalVoucher, error) {
	query := `SELECT` + voucherColumns + ` FROM vouchers WHERE tenant_id = $1 AND source_module = $2 AND reference = $3;`
	return scanVoucher(r.Pool.QueryRow(ctx, query, tenantID, module, reference))
}

// ListVouchersByTenant retrieves a page of vouchers using token-based
// pagination, newest first.
func (r *PgxVoucherRepository) ListVouchersByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalVoucher, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT` + voucherColumns + ` FROM vouchers WHERE tenant_id = $1`
	orderByClause := `ORDER BY voucher_date DESC, created_at DESC`

	args := []interface{}{tenantID}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		baseQuery += ` AND (voucher_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query vouchers for tenant "+tenantID, err)
	}
	defer rows.Close()

	vouchers := []domain.JournalVoucher{}
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, nil, err
		}
		vouchers = append(vouchers, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating voucher rows", err)
	}

	var newNextToken *string
	if len(vouchers) == fetchLimit {
		vouchers = vouchers[:limit]
		last := vouchers[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		newNextToken = &token
	}
	return vouchers, newNextToken, nil
}

// SaveVoucher persists the voucher and all its entries as one atomic unit at
// serializable isolation. The tenant-scoped voucher number is allocated from
// the persisted per-year sequence inside the same transaction, so a rollback
// returns the number slot along with everything else.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.JournalVoucher, entries []domain.LedgerEntry) (*domain.JournalVoucher, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin serializable transaction", err)
	}
	defer r.Rollback(ctx, tx)

	year := voucher.Date.Year()
	seqQuery := `
		INSERT INTO voucher_sequences (tenant_id, year, next_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, year)
		DO UPDATE SET next_number = voucher_sequences.next_number + 1
		RETURNING next_number;`
	var seq int64
	if err := tx.QueryRow(ctx, seqQuery, voucher.TenantID, year).Scan(&seq); err != nil {
		if isSerializationFailure(err) {
			return nil, apperrors.ErrConcurrentModification
		}
		return nil, apperrors.NewAppError(500, "failed to allocate voucher number", err)
	}
	voucher.VoucherNumber = domain.FormatVoucherNumber(year, seq)

	var docType, docID *string
	if !voucher.SourceDoc.IsZero() {
		t, id := string(voucher.SourceDoc.Type), voucher.SourceDoc.ID
		docType, docID = &t, &id
	}

	voucherQuery := `
		INSERT INTO vouchers (
			voucher_id, tenant_id, voucher_number, voucher_date, description, reference,
			source_module, source_doc_type, source_doc_id, status, amount,
			original_voucher_id, reversing_voucher_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`
	_, err = tx.Exec(ctx, voucherQuery,
		voucher.VoucherID,
		voucher.TenantID,
		voucher.VoucherNumber,
		voucher.Date,
		voucher.Description,
		voucher.Reference,
		voucher.SourceModule,
		docType,
		docID,
		voucher.Status,
		voucher.Amount,
		voucher.OriginalVoucherID,
		voucher.ReversingVoucherID,
		voucher.CreatedAt,
		voucher.CreatedBy,
		voucher.LastUpdatedAt,
		voucher.LastUpdatedBy,
	)
	if err != nil {
		if isSerializationFailure(err) {
			return nil, apperrors.ErrConcurrentModification
		}
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, apperrors.NewAppError(500, "failed to insert voucher "+voucher.VoucherID, err)
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (
			entry_id, tenant_id, account_id, voucher_id, entry_date, debit, credit,
			description, source_doc_type, source_doc_id, created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	for _, e := range entries {
		var eDocType, eDocID *string
		if !e.SourceDoc.IsZero() {
			t, id := string(e.SourceDoc.Type), e.SourceDoc.ID
			eDocType, eDocID = &t, &id
		}
		batch.Queue(entryQuery,
			e.EntryID,
			e.TenantID,
			e.AccountID,
			voucher.VoucherID,
			e.Date,
			e.Debit,
			e.Credit,
			e.Description,
			eDocType,
			eDocID,
			e.CreatedAt,
			e.CreatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isSerializationFailure(err) {
			return nil, apperrors.ErrConcurrentModification
		}
		return nil, apperrors.NewAppError(500, "failed to insert entries for voucher "+voucher.VoucherID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return nil, apperrors.ErrConcurrentModification
		}
		return nil, apperrors.NewAppError(500, "failed to commit voucher "+voucher.VoucherID, err)
	}
	return &voucher, nil
}

// UpdateVoucherStatusAndLinks updates the status and reversal linkage of a
// voucher.
func (r *PgxVoucherRepository) UpdateVoucherStatusAndLinks(ctx context.Context, tenantID string, voucherID string, status domain.VoucherStatus, reversingVoucherID *string, updatedBy string, now time.Time) error {
	query := `
		UPDATE vouchers
		SET status = $3, reversing_voucher_id = $4, last_updated_by = $5, last_updated_at = $6
		WHERE tenant_id = $1 AND voucher_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, tenantID, voucherID, status, reversingVoucherID, updatedBy, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update voucher "+voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const entryColumns = `
	entry_id, tenant_id, account_id, voucher_id, entry_date, debit, credit,
	description, source_doc_type, source_doc_id,
	reconciliation_batch_id, reconciled_at, created_at, created_by`

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var docType, docID sql.NullString
	var batchID sql.NullString
	var reconciledAt sql.NullTime
	err := row.Scan(
		&e.EntryID,
		&e.TenantID,
		&e.AccountID,
		&e.VoucherID,
		&e.Date,
		&e.Debit,
		&e.Credit,
		&e.Description,
		&docType,
		&docID,
		&batchID,
		&reconciledAt,
		&e.CreatedAt,
		&e.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
	}
	if docType.Valid {
		e.SourceDoc = domain.DocumentRef{Type: domain.DocumentType(docType.String), ID: docID.String}
	}
	if batchID.Valid {
		e.IsReconciled = true
		e.ReconciliationBatchID = &batchID.String
	}
	if reconciledAt.Valid {
		t := reconciledAt.Time
		e.ReconciledAt = &t
	}
	return &e, nil
}

// FindEntriesByVoucherID retrieves all entries of a voucher.
func (r *PgxVoucherRepository) FindEntriesByVoucherID(ctx context.Context, tenantID string, voucherID string) ([]domain.LedgerEntry, error) {
	query := `SELECT` + entryColumns + `
		FROM ledger_entries
		WHERE tenant_id = $1 AND voucher_id = $2
		ORDER BY entry_id;`
	rows, err := r.Pool.Query(ctx, query, tenantID, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for voucher "+voucherID, err)
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
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	return entries, nil
}

// ListEntriesByAccount retrieves a page of one account's entries using
// token-based pagination, newest first.
func (r *PgxVoucherRepository) ListEntriesByAccount(ctx context.Context, tenantID string, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT` + entryColumns + `
		FROM ledger_entries
		WHERE tenant_id = $1 AND account_id = $2`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{tenantID, accountID}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		baseQuery += ` AND (entry_date, created_at) < ($3, $4)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for account "+accountID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var newNextToken *string
	if len(entries) == fetchLimit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		newNextToken = &token
	}
	return entries, newNextToken, nil
}
