package services

import (
	"context"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/tenbooks/tenbooks_app/internal/dto"
)

// DocumentSvcFacade is the ingestion point through which collaborator
// modules register the source documents (by identity and totals only) that
// the aging reports read.
type DocumentSvcFacade interface {
	// RegisterDocument records a collaborator-owned document reference.
	RegisterDocument(ctx context.Context, tenant *domain.Tenant, req dto.RegisterDocumentRequest, creatorUserID string) (*domain.SourceDocument, error)

	// RecordPayment settles part or all of a document's outstanding amount.
	RecordPayment(ctx context.Context, tenant *domain.Tenant, documentID string, req dto.RecordPaymentRequest, userID string) error
}
