package services

import (
	"context"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/tenbooks/tenbooks_app/internal/dto"
)

// TenantSvcFacade defines tenant resolution and provisioning operations.
// Resolution is a pure lookup: it either returns an operable tenant or fails,
// never a silent default.
type TenantSvcFacade interface {
	// ResolveTenant maps an inbound tenant identifier (ID or slug) to an
	// operable tenant, failing with ErrTenantNotFound or ErrTenantSuspended.
	ResolveTenant(ctx context.Context, identifier string) (*domain.Tenant, error)

	// CreateTenant provisions a tenant and seeds its system chart of
	// accounts atomically.
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error)

	// SuspendTenant moves the tenant to SUSPENDED.
	SuspendTenant(ctx context.Context, tenantID string, updaterUserID string) error

	// ActivateTenant moves the tenant back to ACTIVE.
	ActivateTenant(ctx context.Context, tenantID string, updaterUserID string) error
}
