package services

import (
	"context"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/tenbooks/tenbooks_app/internal/dto"
)

// AccountSvcFacade defines chart-of-accounts operations. Every operation
// takes the resolved tenant explicitly; there is no implicit current tenant.
type AccountSvcFacade interface {
	// CreateAccount creates a user-defined (non-system) account.
	CreateAccount(ctx context.Context, tenant *domain.Tenant, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves one account of the tenant.
	GetAccountByID(ctx context.Context, tenant *domain.Tenant, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves several accounts of the tenant keyed by ID.
	GetAccountsByIDs(ctx context.Context, tenant *domain.Tenant, accountIDs []string) (map[string]domain.Account, error)

	// GetSystemAccount resolves one of the seeded system accounts by name,
	// failing with ErrTenantNotProvisioned when it is missing.
	GetSystemAccount(ctx context.Context, tenant *domain.Tenant, name string) (*domain.Account, error)

	// ListAccounts lists the tenant's accounts, optionally filtered by type.
	ListAccounts(ctx context.Context, tenant *domain.Tenant, typeFilter *domain.AccountType) ([]domain.Account, error)

	// DeactivateAccount soft-deactivates an account; system accounts and
	// accounts with unreconciled entries are refused with ErrAccountInUse.
	DeactivateAccount(ctx context.Context, tenant *domain.Tenant, accountID string, updaterUserID string) error
}
