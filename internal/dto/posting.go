package dto

import (
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingLineRequest is one debit or credit line of a manual journal entry.
type PostingLineRequest struct {
	AccountID   string           `json:"accountID" binding:"required"`
	Side        domain.EntrySide `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	Description string           `json:"description"`
}

// CreatePostingRequest defines a manual journal entry submitted over HTTP.
// It goes through the same commit path as every system-generated posting.
type CreatePostingRequest struct {
	Date        time.Time            `json:"date" binding:"required"`
	Description string               `json:"description" binding:"required"`
	Reference   string               `json:"reference"`
	Lines       []PostingLineRequest `json:"lines" binding:"required,dive"`
}

// ToPostingRequest converts the DTO into the engine's transient value object
// with the manual source tag.
func (r CreatePostingRequest) ToPostingRequest() domain.PostingRequest {
	lines := make([]domain.PostingLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.PostingLine{
			AccountID:   l.AccountID,
			Side:        l.Side,
			Amount:      l.Amount,
			Description: l.Description,
		}
	}
	return domain.PostingRequest{
		SourceModule: domain.SourceManual,
		Date:         r.Date,
		Description:  r.Description,
		Reference:    r.Reference,
		Lines:        lines,
	}
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	VoucherID    string          `json:"voucherID"`
	Date         time.Time       `json:"date"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Description  string          `json:"description"`
	IsReconciled bool            `json:"isReconciled"`
}

// VoucherResponse defines the data returned for a journal voucher.
type VoucherResponse struct {
	VoucherID     string               `json:"voucherID"`
	VoucherNumber string               `json:"voucherNumber"`
	Date          time.Time            `json:"date"`
	Description   string               `json:"description"`
	Reference     string               `json:"reference,omitempty"`
	SourceModule  domain.SourceModule  `json:"sourceModule"`
	Status        domain.VoucherStatus `json:"status"`
	Amount        decimal.Decimal      `json:"amount"`
	Entries       []EntryResponse      `json:"entries,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ToEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:      e.EntryID,
		AccountID:    e.AccountID,
		VoucherID:    e.VoucherID,
		Date:         e.Date,
		Debit:        e.Debit,
		Credit:       e.Credit,
		Description:  e.Description,
		IsReconciled: e.IsReconciled,
	}
}

// ToEntryResponses converts a slice of ledger entries.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out
}

// ToVoucherResponse converts a domain.JournalVoucher to its response DTO.
func ToVoucherResponse(v *domain.JournalVoucher) VoucherResponse {
	resp := VoucherResponse{
		VoucherID:     v.VoucherID,
		VoucherNumber: v.VoucherNumber,
		Date:          v.Date,
		Description:   v.Description,
		Reference:     v.Reference,
		SourceModule:  v.SourceModule,
		Status:        v.Status,
		Amount:        v.Amount,
		CreatedAt:     v.CreatedAt,
	}
	if len(v.Entries) > 0 {
		resp.Entries = ToEntryResponses(v.Entries)
	}
	return resp
}

// ListVouchersParams holds parameters for listing vouchers.
type ListVouchersParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListVouchersResponse is a page of vouchers plus the next-page token.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ListEntriesParams holds parameters for listing account entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of ledger entries plus the next-page token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
