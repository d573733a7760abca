package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/dto"
)

var (
	// ErrDuplicateAccount is returned when an account name collides within
	// the tenant.
	ErrDuplicateAccount = errors.New("account name already exists in this tenant")

	// ErrAccountInUse is returned when deactivation is refused: the account
	// is a system account, or unreconciled entries still reference it.
	ErrAccountInUse = errors.New("account is in use and cannot be deactivated")

	// ErrTenantNotProvisioned is returned when a required system account is
	// missing from the tenant's chart. This indicates a failed onboarding
	// and is fatal for the operation that needed the account.
	ErrTenantNotProvisioned = errors.New("tenant is missing a required system account")
)

// accountService manages the per-tenant chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(ar portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: ar}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a user-defined account in the tenant's chart.
func (s *accountService) CreateAccount(ctx context.Context, tenant *domain.Tenant, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if !domain.ValidAccountType(req.AccountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	existing, err := s.accountRepo.FindAccountByName(ctx, tenant.TenantID, req.Name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account name uniqueness", slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to check account name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, req.Name)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    tenant.TenantID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsSystem:    false,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, req.Name)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("tenant_id", tenant.TenantID), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("tenant_id", tenant.TenantID))
	return &account, nil
}

// GetAccountByID retrieves one account of the tenant. Accounts of other
// tenants are reported as not found, never as forbidden, to avoid leaking
// their existence.
func (s *accountService) GetAccountByID(ctx context.Context, tenant *domain.Tenant, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenant.TenantID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves several accounts of the tenant keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, tenant *domain.Tenant, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenant.TenantID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs", slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// GetSystemAccount resolves one of the seeded system accounts by name. Its
// absence means the tenant was mis-provisioned.
func (s *accountService) GetSystemAccount(ctx context.Context, tenant *domain.Tenant, name string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByName(ctx, tenant.TenantID, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, ErrTenantNotProvisioned, "System account missing",
				slog.String("tenant_id", tenant.TenantID), slog.String("account_name", name))
			return nil, fmt.Errorf("%w: %s", ErrTenantNotProvisioned, name)
		}
		return nil, fmt.Errorf("failed to resolve system account %s: %w", name, err)
	}
	if !account.IsSystem {
		return nil, fmt.Errorf("%w: %s exists but is not a system account", ErrTenantNotProvisioned, name)
	}
	return account, nil
}

// ListAccounts lists the tenant's accounts sorted by type then name.
func (s *accountService) ListAccounts(ctx context.Context, tenant *domain.Tenant, typeFilter *domain.AccountType) ([]domain.Account, error) {
	if typeFilter != nil && !domain.ValidAccountType(*typeFilter) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *typeFilter)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, tenant.TenantID, typeFilter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount soft-deactivates an account. System accounts are always
// refused; ordinary accounts are refused while unreconciled entries exist
// against them, so a deactivation can never orphan an open bank
// reconciliation.
func (s *accountService) DeactivateAccount(ctx context.Context, tenant *domain.Tenant, accountID string, updaterUserID string) error {
	account, err := s.GetAccountByID(ctx, tenant, accountID)
	if err != nil {
		return err
	}

	if account.IsSystem {
		return fmt.Errorf("%w: %s is a system account", ErrAccountInUse, account.Name)
	}

	open, err := s.accountRepo.HasUnreconciledEntries(ctx, tenant.TenantID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check unreconciled entries", slog.String("account_id", accountID))
		return fmt.Errorf("failed to check account usage: %w", err)
	}
	if open {
		return fmt.Errorf("%w: %s has unreconciled entries", ErrAccountInUse, account.Name)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, tenant.TenantID, accountID, updaterUserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID), slog.String("tenant_id", tenant.TenantID))
	return nil
}
