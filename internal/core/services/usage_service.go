package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
)

// usageService exposes the counts the external billing observer consumes.
// It never reads ledger rows and never writes anything.
type usageService struct {
	BaseService
	usageRepo portsrepo.UsageRepository
}

// NewUsageService creates a new UsageService.
func NewUsageService(ur portsrepo.UsageRepository) portssvc.UsageReaderSvc {
	return &usageService{usageRepo: ur}
}

var _ portssvc.UsageReaderSvc = (*usageService)(nil)

// GetUsageSummary reports account, voucher and entry counts for the period.
func (s *usageService) GetUsageSummary(ctx context.Context, tenant *domain.Tenant, from, to time.Time) (*domain.UsageSummary, error) {
	summary, err := s.usageRepo.GetUsageSummary(ctx, tenant.TenantID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve usage summary", slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to retrieve usage summary: %w", err)
	}
	return summary, nil
}
