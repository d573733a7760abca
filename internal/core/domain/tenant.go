package domain

// TenantStatus indicates the lifecycle state of a tenant.
type TenantStatus string

const (
	TenantActive    TenantStatus = "ACTIVE"
	TenantTrial     TenantStatus = "TRIAL"
	TenantSuspended TenantStatus = "SUSPENDED"
)

// Tenant identifies one isolated data partition. Every other entity in the
// ledger belongs to exactly one tenant and is scoped by its TenantID on every
// storage access. Tenants are created once at onboarding and never deleted,
// only suspended.
type Tenant struct {
	TenantID             string       `json:"tenantID"`
	Name                 string       `json:"name"`
	Slug                 string       `json:"slug"` // isolation key used by the HTTP layer (subdomain/header)
	Status               TenantStatus `json:"status"`
	BaseCurrencyCode     string       `json:"baseCurrencyCode"`     // single base currency, default NGN
	FiscalYearStartMonth int          `json:"fiscalYearStartMonth"` // 1..12
	AuditFields
}

// IsActive reports whether the tenant may perform operations. Trial tenants
// operate like active ones; suspension is the only blocking state.
func (t *Tenant) IsActive() bool {
	return t.Status == TenantActive || t.Status == TenantTrial
}
