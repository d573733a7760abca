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

// Tenant resolution failures. The sentinels live in apperrors so the HTTP
// middleware can map them without importing this package; these aliases keep
// call sites short.
var (
	ErrTenantNotFound  = apperrors.ErrTenantNotFound
	ErrTenantSuspended = apperrors.ErrTenantSuspended
)

// DefaultBaseCurrency is used when onboarding does not specify one.
const DefaultBaseCurrency = "NGN"

// tenantService resolves and provisions tenants.
type tenantService struct {
	BaseService
	tenantRepo portsrepo.TenantRepositoryFacade
}

// NewTenantService creates a new TenantService.
func NewTenantService(tr portsrepo.TenantRepositoryFacade) portssvc.TenantSvcFacade {
	return &tenantService{tenantRepo: tr}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// ResolveTenant maps an identifier (tenant ID or slug) to an operable
// tenant. It is a pure lookup: unknown identifiers fail with
// ErrTenantNotFound, suspended tenants with ErrTenantSuspended, and there is
// no fallback tenant.
func (s *tenantService) ResolveTenant(ctx context.Context, identifier string) (*domain.Tenant, error) {
	if identifier == "" {
		return nil, ErrTenantNotFound
	}

	tenant, err := s.tenantRepo.FindTenantBySlug(ctx, identifier)
	if errors.Is(err, apperrors.ErrNotFound) {
		tenant, err = s.tenantRepo.FindTenantByID(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, identifier)
		}
		s.LogError(ctx, err, "Failed to look up tenant", slog.String("identifier", identifier))
		return nil, fmt.Errorf("failed to resolve tenant %s: %w", identifier, err)
	}

	if !tenant.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrTenantSuspended, tenant.TenantID)
	}
	return tenant, nil
}

// CreateTenant provisions a new tenant and seeds its system chart of
// accounts in one transaction. A tenant without the full seed set must never
// become visible; the repository guarantees atomicity.
func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	now := time.Now().UTC()

	currency := req.BaseCurrencyCode
	if currency == "" {
		currency = DefaultBaseCurrency
	}
	fiscalStart := req.FiscalYearStartMonth
	if fiscalStart == 0 {
		fiscalStart = 1
	}

	tenant := domain.Tenant{
		TenantID:             uuid.NewString(),
		Name:                 req.Name,
		Slug:                 req.Slug,
		Status:               domain.TenantTrial,
		BaseCurrencyCode:     currency,
		FiscalYearStartMonth: fiscalStart,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	accounts := make([]domain.Account, len(domain.DefaultChartOfAccounts))
	for i, seed := range domain.DefaultChartOfAccounts {
		accounts[i] = domain.Account{
			AccountID:   uuid.NewString(),
			TenantID:    tenant.TenantID,
			Code:        seed.Code,
			Name:        seed.Name,
			AccountType: seed.Type,
			IsSystem:    true,
			IsActive:    true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	if err := s.tenantRepo.SaveTenantWithAccounts(ctx, tenant, accounts); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: slug %s is taken", apperrors.ErrDuplicate, req.Slug)
		}
		s.LogError(ctx, err, "Failed to provision tenant", slog.String("slug", req.Slug))
		return nil, fmt.Errorf("failed to provision tenant: %w", err)
	}

	s.LogInfo(ctx, "Tenant provisioned",
		slog.String("tenant_id", tenant.TenantID),
		slog.String("slug", tenant.Slug),
		slog.Int("seed_accounts", len(accounts)))
	return &tenant, nil
}

// SuspendTenant moves the tenant to SUSPENDED. Suspension is the only exit
// from service; tenants are never deleted.
func (s *tenantService) SuspendTenant(ctx context.Context, tenantID string, updaterUserID string) error {
	return s.setStatus(ctx, tenantID, domain.TenantSuspended, updaterUserID)
}

// ActivateTenant moves the tenant back to ACTIVE.
func (s *tenantService) ActivateTenant(ctx context.Context, tenantID string, updaterUserID string) error {
	return s.setStatus(ctx, tenantID, domain.TenantActive, updaterUserID)
}

func (s *tenantService) setStatus(ctx context.Context, tenantID string, status domain.TenantStatus, updaterUserID string) error {
	if err := s.tenantRepo.UpdateTenantStatus(ctx, tenantID, status, updaterUserID, time.Now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrTenantNotFound, tenantID)
		}
		s.LogError(ctx, err, "Failed to update tenant status", slog.String("tenant_id", tenantID), slog.String("status", string(status)))
		return fmt.Errorf("failed to update tenant status: %w", err)
	}
	s.LogInfo(ctx, "Tenant status updated", slog.String("tenant_id", tenantID), slog.String("status", string(status)))
	return nil
}
