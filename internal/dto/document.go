package dto

import (
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterDocumentRequest records a collaborator-owned source document by
// identity and totals only.
type RegisterDocumentRequest struct {
	Type         domain.DocumentType `json:"type" binding:"required,oneof=INVOICE BILL EXPENSE PAYSLIP ASSET FUND_TRANSFER"`
	Number       string              `json:"number" binding:"required"`
	Counterparty string              `json:"counterparty" binding:"required"`
	IssueDate    time.Time           `json:"issueDate" binding:"required"`
	DueDate      time.Time           `json:"dueDate" binding:"required"`
	TotalAmount  decimal.Decimal     `json:"totalAmount" binding:"required"`
}

// RecordPaymentRequest settles part of a document's outstanding amount.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// DocumentResponse defines the data returned for a source document.
type DocumentResponse struct {
	DocumentID   string                `json:"documentID"`
	Type         domain.DocumentType   `json:"type"`
	Number       string                `json:"number"`
	Counterparty string                `json:"counterparty"`
	IssueDate    time.Time             `json:"issueDate"`
	DueDate      time.Time             `json:"dueDate"`
	TotalAmount  decimal.Decimal       `json:"totalAmount"`
	PaidAmount   decimal.Decimal       `json:"paidAmount"`
	Outstanding  decimal.Decimal       `json:"outstanding"`
	Status       domain.DocumentStatus `json:"status"`
}

// ToDocumentResponse converts a domain.SourceDocument.
func ToDocumentResponse(d *domain.SourceDocument) DocumentResponse {
	return DocumentResponse{
		DocumentID:   d.DocumentID,
		Type:         d.Type,
		Number:       d.Number,
		Counterparty: d.Counterparty,
		IssueDate:    d.IssueDate,
		DueDate:      d.DueDate,
		TotalAmount:  d.TotalAmount,
		PaidAmount:   d.PaidAmount,
		Outstanding:  d.Outstanding(),
		Status:       d.Status,
	}
}
