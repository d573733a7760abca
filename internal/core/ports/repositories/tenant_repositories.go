package repositories

import (
	"context"
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
)

// TenantReader defines read operations for tenant data.
type TenantReader interface {
	// FindTenantByID retrieves a tenant by its unique identifier.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// FindTenantBySlug retrieves a tenant by its isolation key (slug).
	FindTenantBySlug(ctx context.Context, slug string) (*domain.Tenant, error)

	// ListTenants retrieves all tenants, newest first.
	ListTenants(ctx context.Context, limit int, offset int) ([]domain.Tenant, error)
}

// TenantWriter defines write operations for tenant data.
type TenantWriter interface {
	// SaveTenantWithAccounts persists a new tenant together with its seeded
	// system chart of accounts in a single transaction. A partial seed must
	// never become visible.
	SaveTenantWithAccounts(ctx context.Context, tenant domain.Tenant, accounts []domain.Account) error

	// UpdateTenantStatus changes the lifecycle status of a tenant.
	UpdateTenantStatus(ctx context.Context, tenantID string, status domain.TenantStatus, updatedBy string, now time.Time) error
}

// TenantRepositoryFacade combines all tenant repository interfaces.
type TenantRepositoryFacade interface {
	TenantReader
	TenantWriter
}
