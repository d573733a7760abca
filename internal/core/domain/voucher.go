package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// VoucherStatus indicates the state of a journal voucher.
type VoucherStatus string

const (
	Posted   VoucherStatus = "POSTED"
	Reversed VoucherStatus = "REVERSED"
)

// JournalVoucher groups all ledger entries committed from a single balanced
// business event. The voucher and its entries are written atomically and are
// immutable after commit; corrections are made by posting a reversing
// voucher, never by editing history.
type JournalVoucher struct {
	VoucherID     string        `json:"voucherID"`
	TenantID      string        `json:"tenantID"`
	VoucherNumber string        `json:"voucherNumber"` // e.g. JV-2026-000123, unique per tenant
	Date          time.Time     `json:"date"`
	Description   string        `json:"description"`
	Reference     string        `json:"reference"`
	SourceModule  SourceModule  `json:"sourceModule"`
	SourceDoc     DocumentRef   `json:"sourceDoc"`
	Status        VoucherStatus `json:"status"`
	Amount        decimal.Decimal `json:"amount"` // economic value: the debit-side total

	// Reversal linkage. A reversing voucher points at the voucher it
	// reverses; the reversed voucher points back.
	OriginalVoucherID  *string `json:"originalVoucherID,omitempty"`
	ReversingVoucherID *string `json:"reversingVoucherID,omitempty"`

	AuditFields

	// Entries are loaded separately; nil unless explicitly fetched.
	Entries []LedgerEntry `json:"entries,omitempty"`
}

// FormatVoucherNumber renders the tenant-scoped, year-segmented voucher
// number for a given sequence value.
func FormatVoucherNumber(year int, seq int64) string {
	return fmt.Sprintf("JV-%d-%06d", year, seq)
}
