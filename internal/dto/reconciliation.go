package dto

import (
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconcileRequest submits one bank statement snapshot for matching against
// an account's unreconciled entries.
type ReconcileRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	StatementDate  time.Time       `json:"statementDate" binding:"required"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// ReconciliationResponse reports the outcome of a reconciliation run.
type ReconciliationResponse struct {
	Reconciled      bool            `json:"reconciled"`
	BatchID         string          `json:"batchID,omitempty"`
	MatchedEntryIDs []string        `json:"matchedEntryIDs"`
	MatchedTotal    decimal.Decimal `json:"matchedTotal"`
	Discrepancy     decimal.Decimal `json:"discrepancy"`
}

// ToReconciliationResponse converts a domain.ReconciliationResult.
func ToReconciliationResponse(r *domain.ReconciliationResult) ReconciliationResponse {
	resp := ReconciliationResponse{
		Reconciled:      r.Reconciled(),
		MatchedEntryIDs: r.MatchedEntryIDs,
		MatchedTotal:    r.MatchedTotal,
		Discrepancy:     r.Discrepancy,
	}
	if r.Batch != nil {
		resp.BatchID = r.Batch.BatchID
	}
	return resp
}
