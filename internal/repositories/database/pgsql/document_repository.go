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

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepository = (*PgxDocumentRepository)(nil)

const documentColumns = `
	document_id, tenant_id, doc_type, number, counterparty, issue_date, due_date,
	total_amount, paid_amount, status, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (*domain.SourceDocument, error) {
	var d domain.SourceDocument
	err := row.Scan(
		&d.DocumentID,
		&d.TenantID,
		&d.Type,
		&d.Number,
		&d.Counterparty,
		&d.IssueDate,
		&d.DueDate,
		&d.TotalAmount,
		&d.PaidAmount,
		&d.Status,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan source document row", err)
	}
	return &d, nil
}

// SaveDocument persists a new source document reference.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.SourceDocument) error {
	query := `
		INSERT INTO source_documents (
			document_id, tenant_id, doc_type, number, counterparty, issue_date, due_date,
			total_amount, paid_amount, status, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	_, err := r.Pool.Exec(ctx, query,
		doc.DocumentID,
		doc.TenantID,
		doc.Type,
		doc.Number,
		doc.Counterparty,
		doc.IssueDate,
		doc.DueDate,
		doc.TotalAmount,
		doc.PaidAmount,
		doc.Status,
		doc.CreatedAt,
		doc.CreatedBy,
		doc.LastUpdatedAt,
		doc.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert source document "+doc.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves a source document within a tenant.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, tenantID string, documentID string) (*domain.SourceDocument, error) {
	query := `SELECT` + documentColumns + ` FROM source_documents WHERE tenant_id = $1 AND document_id = $2;`
	return scanDocument(r.Pool.QueryRow(ctx, query, tenantID, documentID))
}

// RecordPayment adds amount to the document's paid total and refreshes its
// settlement status.
func (r *PgxDocumentRepository) RecordPayment(ctx context.Context, tenantID string, documentID string, amount decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE source_documents
		SET paid_amount = paid_amount + $3,
		    status = CASE
		        WHEN paid_amount + $3 >= total_amount THEN 'SETTLED'
		        ELSE 'PARTIALLY_PAID'
		    END,
		    last_updated_by = $4, last_updated_at = $5
		WHERE tenant_id = $1 AND document_id = $2 AND paid_amount + $3 <= total_amount;`
	tag, err := r.Pool.Exec(ctx, query, tenantID, documentID, amount, updatedBy, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record payment on document "+documentID, err)
	}
	// Zero rows means either a missing document or a payment that raced
	// past the outstanding amount.
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// ListOpenDocuments returns documents of the given types that are not fully
// settled as of the date, ordered by due date.
func (r *PgxDocumentRepository) ListOpenDocuments(ctx context.Context, tenantID string, types []domain.DocumentType, asOf time.Time) ([]domain.SourceDocument, error) {
	query := `SELECT` + documentColumns + `
		FROM source_documents
		WHERE tenant_id = $1 AND doc_type = ANY($2) AND issue_date <= $3
		  AND total_amount > paid_amount
		ORDER BY due_date;`
	rows, err := r.Pool.Query(ctx, query, tenantID, types, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open documents for tenant "+tenantID, err)
	}
	defer rows.Close()

	docs := []domain.SourceDocument{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating source document rows", err)
	}
	return docs, nil
}
