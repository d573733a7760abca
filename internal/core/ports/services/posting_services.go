package services

import (
	"context"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/tenbooks/tenbooks_app/internal/dto"
)

// PostingSvcFacade is the single entry point for writing to the ledger.
// Every posting producer, manual entries included, funnels through Commit;
// there is no privileged bypass.
type PostingSvcFacade interface {
	// Commit validates the posting request and writes the voucher with all
	// its entries atomically. Validation failures are rejection errors
	// (ErrEmptyPosting, ErrUnbalancedPosting, ErrUnknownAccount,
	// ErrInvalidAmount); storage conflicts surface as
	// apperrors.ErrConcurrentModification after retries are exhausted.
	Commit(ctx context.Context, tenant *domain.Tenant, req domain.PostingRequest, creatorUserID string) (*domain.JournalVoucher, error)

	// ReversePosting posts a mirrored voucher correcting a previously
	// committed one. History is never edited.
	ReversePosting(ctx context.Context, tenant *domain.Tenant, voucherID string, userID string) (*domain.JournalVoucher, error)

	// GetVoucher retrieves a voucher and its entries.
	GetVoucher(ctx context.Context, tenant *domain.Tenant, voucherID string) (*domain.JournalVoucher, error)

	// ListVouchers retrieves a page of vouchers, newest first.
	ListVouchers(ctx context.Context, tenant *domain.Tenant, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)

	// ListEntriesByAccount retrieves a page of one account's entries.
	ListEntriesByAccount(ctx context.Context, tenant *domain.Tenant, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
