package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus tracks how much of a source document has been settled.
type DocumentStatus string

const (
	DocumentOpen          DocumentStatus = "OPEN"
	DocumentPartiallyPaid DocumentStatus = "PARTIALLY_PAID"
	DocumentSettled       DocumentStatus = "SETTLED"
)

// SourceDocument is the ledger core's read model of an invoice, bill or
// similar document owned by a collaborator module. Only identity, totals and
// due dates are held here; the full record lives with its owner. Open
// documents feed the aging reports.
type SourceDocument struct {
	DocumentID   string          `json:"documentID"`
	TenantID     string          `json:"tenantID"`
	Type         DocumentType    `json:"type"`
	Number       string          `json:"number"`
	Counterparty string          `json:"counterparty"` // customer or vendor display name
	IssueDate    time.Time       `json:"issueDate"`
	DueDate      time.Time       `json:"dueDate"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	Status       DocumentStatus  `json:"status"`
	AuditFields
}

// Outstanding is the unpaid portion of the document.
func (d SourceDocument) Outstanding() decimal.Decimal {
	return d.TotalAmount.Sub(d.PaidAmount)
}
