package repositories

import (
	"context"
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentRepository defines persistence for the ledger core's read model of
// collaborator-owned source documents (invoices, bills, ...). Only identity,
// totals and due dates are stored.
type DocumentRepository interface {
	// SaveDocument persists a new source document reference.
	SaveDocument(ctx context.Context, doc domain.SourceDocument) error

	// FindDocumentByID retrieves a source document within a tenant.
	FindDocumentByID(ctx context.Context, tenantID string, documentID string) (*domain.SourceDocument, error)

	// RecordPayment adds amount to the document's paid total and refreshes
	// its settlement status.
	RecordPayment(ctx context.Context, tenantID string, documentID string, amount decimal.Decimal, updatedBy string, now time.Time) error

	// ListOpenDocuments returns documents of the given types that are not
	// fully settled as of the date, ordered by due date.
	ListOpenDocuments(ctx context.Context, tenantID string, types []domain.DocumentType, asOf time.Time) ([]domain.SourceDocument, error)
}
