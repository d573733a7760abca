package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether a posting line is a Debit or a Credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// SourceModule tags the module that produced a posting. The posting engine is
// agnostic to which module submitted a request; the tag exists for audit.
type SourceModule string

const (
	SourceManual         SourceModule = "manual"
	SourceSales          SourceModule = "sales"
	SourcePurchase       SourceModule = "purchase"
	SourceExpense        SourceModule = "expense"
	SourcePayroll        SourceModule = "payroll"
	SourceDepreciation   SourceModule = "depreciation"
	SourceReconciliation SourceModule = "reconciliation"
	SourceTransfer       SourceModule = "transfer"
)

// DocumentType identifies the kind of source document a ledger entry or
// voucher points back to. A reference carries only the document's identity,
// never its full record.
type DocumentType string

const (
	DocInvoice      DocumentType = "INVOICE"
	DocBill         DocumentType = "BILL"
	DocExpense      DocumentType = "EXPENSE"
	DocPayslip      DocumentType = "PAYSLIP"
	DocAsset        DocumentType = "ASSET"
	DocFundTransfer DocumentType = "FUND_TRANSFER"
)

// DocumentRef points at the source document behind a posting. Zero value
// means no source document.
type DocumentRef struct {
	Type DocumentType `json:"type"`
	ID   string       `json:"id"`
}

// IsZero reports whether the reference is unset.
func (r DocumentRef) IsZero() bool {
	return r.Type == "" && r.ID == ""
}

// PostingLine is one debit or credit against one account inside a
// PostingRequest.
type PostingLine struct {
	AccountID   string          `json:"accountID"`
	Side        EntrySide       `json:"side"`
	Amount      decimal.Decimal `json:"amount"` // strictly positive, max 2 decimal places
	Description string          `json:"description"`
}

// PostingRequest is the transient value object submitted to the posting
// engine. It is never persisted; a successful commit turns it into one
// JournalVoucher plus its LedgerEntry rows, a failed commit leaves nothing.
type PostingRequest struct {
	SourceModule SourceModule  `json:"sourceModule"`
	Date         time.Time     `json:"date"`
	Description  string        `json:"description"`
	Reference    string        `json:"reference"` // free-form external reference
	SourceDoc    DocumentRef   `json:"sourceDoc"`
	Lines        []PostingLine `json:"lines"`
}

// DebitTotal sums the debit lines of the request.
func (p PostingRequest) DebitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Lines {
		if l.Side == Debit {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// CreditTotal sums the credit lines of the request.
func (p PostingRequest) CreditTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Lines {
		if l.Side == Credit {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// IsBalanced reports exact decimal equality of the debit and credit sums.
// There is no rounding tolerance; amounts are fixed-point at 2 decimal places.
func (p PostingRequest) IsBalanced() bool {
	return p.DebitTotal().Equal(p.CreditTotal())
}
