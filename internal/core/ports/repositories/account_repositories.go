package repositories

import (
	"context"
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
)

// AccountReader defines read operations for account data. Every method is
// tenant-scoped; an account belonging to another tenant is reported as not
// found, never returned.
type AccountReader interface {
	// FindAccountByID retrieves a specific account within a tenant.
	FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// FindAccountByName retrieves an account by its name within a tenant
	// (case-insensitive).
	FindAccountByName(ctx context.Context, tenantID string, name string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by ID within a tenant.
	// Missing IDs are simply absent from the result map.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts for a tenant, optionally filtered by
	// type, sorted by type then name.
	ListAccounts(ctx context.Context, tenantID string, typeFilter *domain.AccountType) ([]domain.Account, error)

	// HasUnreconciledEntries reports whether any unreconciled ledger entry
	// references the account.
	HasUnreconciledEntries(ctx context.Context, tenantID string, accountID string) (bool, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive. Accounts are never
	// hard-deleted once they carry entries.
	DeactivateAccount(ctx context.Context, tenantID string, accountID string, updatedBy string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
