package repositories

import (
	"context"
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
)

// VoucherReader defines read operations for journal vouchers.
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher within a tenant.
	FindVoucherByID(ctx context.Context, tenantID string, voucherID string) (*domain.JournalVoucher, error)

	// FindVoucherByReference retrieves a voucher by its external reference
	// within a tenant and source module. Used as the idempotency lookup for
	// scheduler-produced postings.
	FindVoucherByReference(ctx context.Context, tenantID string, module domain.SourceModule, reference string) (*domain.JournalVoucher, error)

	// ListVouchersByTenant retrieves a page of vouchers using token-based
	// pagination, newest first. Returns the vouchers and the next-page token.
	ListVouchersByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalVoucher, *string, error)
}

// VoucherWriter defines write operations for journal vouchers.
type VoucherWriter interface {
	// SaveVoucher persists the voucher and all its entries as a single
	// atomic unit at serializable isolation, allocating the tenant-scoped
	// voucher number from the persisted sequence inside the same
	// transaction. Either every row lands durably or none do. A
	// serialization conflict is reported as
	// apperrors.ErrConcurrentModification.
	SaveVoucher(ctx context.Context, voucher domain.JournalVoucher, entries []domain.LedgerEntry) (*domain.JournalVoucher, error)

	// UpdateVoucherStatusAndLinks updates the status and reversal linkage of
	// a voucher.
	UpdateVoucherStatusAndLinks(ctx context.Context, tenantID string, voucherID string, status domain.VoucherStatus, reversingVoucherID *string, updatedBy string, now time.Time) error
}

// EntryReader defines read operations for ledger entries.
type EntryReader interface {
	// FindEntriesByVoucherID retrieves all entries of a voucher.
	FindEntriesByVoucherID(ctx context.Context, tenantID string, voucherID string) ([]domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a page of entries for one account using
	// token-based pagination, newest first.
	ListEntriesByAccount(ctx context.Context, tenantID string, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// VoucherRepositoryFacade combines all voucher repository interfaces.
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
	EntryReader
}

// VoucherRepositoryWithTx extends VoucherRepositoryFacade with transaction
// capabilities.
type VoucherRepositoryWithTx interface {
	VoucherRepositoryFacade
	TransactionManager
}
