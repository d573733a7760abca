package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementSnapshot is the external bank statement view submitted for a
// reconciliation run.
type StatementSnapshot struct {
	StatementDate  time.Time       `json:"statementDate"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// ReconciliationBatch groups ledger entries matched against one bank
// statement snapshot. Entries are attached once and never detached; a
// mismatch never mutates a match, it produces a corrective posting instead.
type ReconciliationBatch struct {
	BatchID          string          `json:"batchID"`
	TenantID         string          `json:"tenantID"`
	AccountID        string          `json:"accountID"`
	StatementDate    time.Time       `json:"statementDate"`
	StatementBalance decimal.Decimal `json:"statementBalance"`
	MatchedTotal     decimal.Decimal `json:"matchedTotal"`
	AuditFields
}

// ReconciliationResult reports the outcome of a reconciliation attempt.
// Batch is nil when the account could not be reconciled to the statement; in
// that case Discrepancy carries the unexplained amount and nothing was
// written.
type ReconciliationResult struct {
	Batch            *ReconciliationBatch `json:"batch,omitempty"`
	MatchedEntryIDs  []string             `json:"matchedEntryIDs"`
	MatchedTotal     decimal.Decimal      `json:"matchedTotal"`
	ReconciledBefore decimal.Decimal      `json:"reconciledBefore"` // balance already reconciled by prior batches
	Discrepancy      decimal.Decimal      `json:"discrepancy"`      // statement balance minus explained balance
}

// Reconciled reports whether the run matched the statement exactly.
func (r ReconciliationResult) Reconciled() bool {
	return r.Batch != nil
}
