package repositories

import (
	"context"
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
)

// UsageRepository defines the read-only count queries behind the billing
// observer contract.
type UsageRepository interface {
	// GetUsageSummary counts accounts, vouchers and entries for the tenant.
	// Voucher and entry counts are restricted to the date range; the account
	// count is a point-in-time total.
	GetUsageSummary(ctx context.Context, tenantID string, from, to time.Time) (*domain.UsageSummary, error)
}
