package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the atomic unit of the ledger: one debit or one credit
// against one account. Exactly one of Debit/Credit is nonzero. Entries are
// created only by the posting engine as part of a voucher commit and are
// immutable afterwards.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"`
	TenantID    string          `json:"tenantID"`
	AccountID   string          `json:"accountID"`
	VoucherID   string          `json:"voucherID"`
	Date        time.Time       `json:"date"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	SourceDoc   DocumentRef     `json:"sourceDoc"`

	// Reconciliation state. Entries are attached to a batch once matched,
	// never detached; a mismatch produces a corrective posting instead.
	IsReconciled          bool    `json:"isReconciled"`
	ReconciliationBatchID *string `json:"reconciliationBatchID,omitempty"`
	ReconciledAt          *time.Time `json:"reconciledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// NetAmount returns debit minus credit for this entry.
func (e LedgerEntry) NetAmount() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}
