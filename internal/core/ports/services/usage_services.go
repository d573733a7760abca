package services

import (
	"context"
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
)

// UsageReaderSvc is the read contract for the external usage/billing
// observer. It consumes counts only and never writes.
type UsageReaderSvc interface {
	// GetUsageSummary reports the tenant's account, voucher and entry
	// counts for the period.
	GetUsageSummary(ctx context.Context, tenant *domain.Tenant, from, to time.Time) (*domain.UsageSummary, error)
}
