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
	"github.com/tenbooks/tenbooks_app/internal/dto"
)

var (
	// ErrInvalidDocument indicates a malformed source document registration.
	ErrInvalidDocument = errors.New("invalid source document")

	// ErrOverpayment indicates a payment exceeding the document's
	// outstanding amount.
	ErrOverpayment = errors.New("payment exceeds outstanding amount")
)

// documentService maintains the read model of collaborator-owned source
// documents that feeds the aging reports. It holds identity, totals and due
// dates only; the owning module keeps the full record.
type documentService struct {
	BaseService
	docRepo portsrepo.DocumentRepository
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(dr portsrepo.DocumentRepository) portssvc.DocumentSvcFacade {
	return &documentService{docRepo: dr}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// RegisterDocument records a collaborator-owned document reference.
func (s *documentService) RegisterDocument(ctx context.Context, tenant *domain.Tenant, req dto.RegisterDocumentRequest, creatorUserID string) (*domain.SourceDocument, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", ErrInvalidDocument)
	}
	if req.DueDate.Before(req.IssueDate) {
		return nil, fmt.Errorf("%w: due date precedes issue date", ErrInvalidDocument)
	}

	now := time.Now()
	doc := domain.SourceDocument{
		DocumentID:   uuid.NewString(),
		TenantID:     tenant.TenantID,
		Type:         req.Type,
		Number:       req.Number,
		Counterparty: req.Counterparty,
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
		TotalAmount:  req.TotalAmount,
		PaidAmount:   decimal.Zero,
		Status:       domain.DocumentOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.docRepo.SaveDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "Failed to save source document",
			slog.String("tenant_id", tenant.TenantID), slog.String("number", req.Number))
		return nil, fmt.Errorf("failed to save source document: %w", err)
	}
	return &doc, nil
}

// RecordPayment settles part or all of a document's outstanding amount.
func (s *documentService) RecordPayment(ctx context.Context, tenant *domain.Tenant, documentID string, req dto.RecordPaymentRequest, userID string) error {
	if !req.Amount.IsPositive() {
		return fmt.Errorf("%w: payment amount must be positive", ErrInvalidDocument)
	}

	doc, err := s.docRepo.FindDocumentByID(ctx, tenant.TenantID, documentID)
	if err != nil {
		return err
	}
	if req.Amount.GreaterThan(doc.Outstanding()) {
		return fmt.Errorf("%w: outstanding %s, payment %s", ErrOverpayment,
			doc.Outstanding().String(), req.Amount.String())
	}

	if err := s.docRepo.RecordPayment(ctx, tenant.TenantID, documentID, req.Amount, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to record payment",
			slog.String("tenant_id", tenant.TenantID), slog.String("document_id", documentID))
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}
