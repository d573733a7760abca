package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
	portssvc "github.com/tenbooks/tenbooks_app/internal/core/ports/services"
	"github.com/tenbooks/tenbooks_app/internal/dto"
)

var (
	// ErrInvalidAsset indicates the asset registration request is not a
	// valid depreciation schedule.
	ErrInvalidAsset = errors.New("invalid fixed asset")

	// ErrInvalidPeriod indicates a depreciation period not in YYYY-MM form.
	ErrInvalidPeriod = errors.New("invalid depreciation period, expected YYYY-MM")
)

// depreciationService turns fixed-asset schedules into depreciation
// postings. All ledger writes go through the posting engine; the service
// itself only decides what to post and records the asset-side bookkeeping.
type depreciationService struct {
	BaseService
	assetRepo   portsrepo.AssetRepositoryFacade
	voucherRepo portsrepo.VoucherReader
	accountSvc  portssvc.AccountSvcFacade
	postingSvc  portssvc.PostingSvcFacade
}

// NewDepreciationService creates a new DepreciationService.
func NewDepreciationService(
	ar portsrepo.AssetRepositoryFacade,
	vr portsrepo.VoucherReader,
	as portssvc.AccountSvcFacade,
	ps portssvc.PostingSvcFacade,
) portssvc.DepreciationSvcFacade {
	return &depreciationService{
		assetRepo:   ar,
		voucherRepo: vr,
		accountSvc:  as,
		postingSvc:  ps,
	}
}

var _ portssvc.DepreciationSvcFacade = (*depreciationService)(nil)

// CreateAsset registers a new fixed asset with a sequential FA-NNNN code.
func (s *depreciationService) CreateAsset(ctx context.Context, tenant *domain.Tenant, req dto.CreateAssetRequest, creatorUserID string) (*domain.FixedAsset, error) {
	if err := validateAssetRequest(req); err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = domain.StraightLine
	}

	count, err := s.assetRepo.CountAssets(ctx, tenant.TenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count fixed assets", slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to count fixed assets: %w", err)
	}

	now := time.Now()
	asset := domain.FixedAsset{
		AssetID:                 uuid.NewString(),
		TenantID:                tenant.TenantID,
		Code:                    fmt.Sprintf("FA-%04d", count+1),
		Name:                    req.Name,
		Category:                req.Category,
		PurchaseDate:            req.PurchaseDate,
		Cost:                    req.Cost,
		SalvageValue:            req.SalvageValue,
		UsefulLifeMonths:        req.UsefulLifeMonths,
		Method:                  method,
		DecliningRate:           req.DecliningRate,
		AccumulatedDepreciation: decimal.Zero,
		Status:                  domain.AssetActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		s.LogError(ctx, err, "Failed to save fixed asset", slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to save fixed asset: %w", err)
	}

	s.LogInfo(ctx, "Fixed asset registered",
		slog.String("tenant_id", tenant.TenantID),
		slog.String("asset_id", asset.AssetID),
		slog.String("code", asset.Code))
	return &asset, nil
}

// ListAssets lists the tenant's active fixed assets.
func (s *depreciationService) ListAssets(ctx context.Context, tenant *domain.Tenant) ([]domain.FixedAsset, error) {
	assets, err := s.assetRepo.ListActiveAssets(ctx, tenant.TenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fixed assets", slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to list fixed assets: %w", err)
	}
	return assets, nil
}

// RunDepreciation posts the period's charge for every active asset that is
// due. Each asset-period pair is keyed by its voucher reference, so a rerun
// after a partial failure resumes where it stopped without double-posting.
func (s *depreciationService) RunDepreciation(ctx context.Context, tenant *domain.Tenant, period string, userID string) (*dto.DepreciationRunResult, error) {
	periodEnd, err := parsePeriodEnd(period)
	if err != nil {
		return nil, err
	}

	expenseAcct, err := s.accountSvc.GetSystemAccount(ctx, tenant, domain.AccountDepExpense)
	if err != nil {
		return nil, err
	}
	accumAcct, err := s.accountSvc.GetSystemAccount(ctx, tenant, domain.AccountAccumulatedDep)
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.ListActiveAssets(ctx, tenant.TenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fixed assets", slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to list fixed assets: %w", err)
	}

	result := &dto.DepreciationRunResult{Period: period, TotalPosted: decimal.Zero}
	for _, asset := range assets {
		if asset.PurchaseDate.After(periodEnd) {
			result.AssetsSkipped++
			continue
		}

		amount := asset.PeriodAmount()
		if amount.IsZero() {
			result.AssetsSkipped++
			continue
		}

		ref := asset.DepreciationReference(period)
		existing, err := s.voucherRepo.FindVoucherByReference(ctx, tenant.TenantID, domain.SourceDepreciation, ref)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check depreciation idempotency key",
				slog.String("tenant_id", tenant.TenantID), slog.String("reference", ref))
			return nil, fmt.Errorf("failed to check depreciation reference %s: %w", ref, err)
		}
		if existing != nil {
			// The charge is already in the ledger. Re-apply it to the
			// asset row with the voucher's recorded amount: if a prior
			// run failed between posting and updating the asset, this
			// repairs the accumulated total; otherwise the period guard
			// makes it a no-op.
			if err := s.assetRepo.ApplyDepreciation(ctx, tenant.TenantID, asset.AssetID, existing.Amount, period, userID, time.Now()); err != nil {
				s.LogError(ctx, err, "Failed to reconcile accumulated depreciation",
					slog.String("tenant_id", tenant.TenantID),
					slog.String("asset_id", asset.AssetID))
				return nil, fmt.Errorf("failed to reconcile accumulated depreciation for asset %s: %w", asset.Code, err)
			}
			result.AssetsSkipped++
			continue
		}

		voucher, err := s.postingSvc.Commit(ctx, tenant, domain.PostingRequest{
			SourceModule: domain.SourceDepreciation,
			Date:         periodEnd,
			Description:  fmt.Sprintf("Depreciation %s for %s", period, asset.Name),
			Reference:    ref,
			SourceDoc:    domain.DocumentRef{Type: domain.DocAsset, ID: asset.AssetID},
			Lines: []domain.PostingLine{
				{AccountID: expenseAcct.AccountID, Side: domain.Debit, Amount: amount},
				{AccountID: accumAcct.AccountID, Side: domain.Credit, Amount: amount},
			},
		}, userID)
		if err != nil {
			s.LogError(ctx, err, "Failed to post depreciation",
				slog.String("tenant_id", tenant.TenantID),
				slog.String("asset_id", asset.AssetID),
				slog.String("period", period))
			return nil, fmt.Errorf("failed to post depreciation for asset %s: %w", asset.Code, err)
		}

		if err := s.assetRepo.ApplyDepreciation(ctx, tenant.TenantID, asset.AssetID, amount, period, userID, time.Now()); err != nil {
			s.LogError(ctx, err, "Failed to update accumulated depreciation",
				slog.String("tenant_id", tenant.TenantID),
				slog.String("asset_id", asset.AssetID))
			return nil, fmt.Errorf("failed to update accumulated depreciation for asset %s: %w", asset.Code, err)
		}

		result.AssetsPosted++
		result.TotalPosted = result.TotalPosted.Add(amount)
		result.VoucherNumbers = append(result.VoucherNumbers, voucher.VoucherNumber)
	}

	s.LogInfo(ctx, "Depreciation run completed",
		slog.String("tenant_id", tenant.TenantID),
		slog.String("period", period),
		slog.Int("posted", result.AssetsPosted),
		slog.Int("skipped", result.AssetsSkipped),
		slog.String("total", result.TotalPosted.String()))
	return result, nil
}

func validateAssetRequest(req dto.CreateAssetRequest) error {
	if !req.Cost.IsPositive() {
		return fmt.Errorf("%w: cost must be positive", ErrInvalidAsset)
	}
	if req.SalvageValue.IsNegative() || req.SalvageValue.GreaterThan(req.Cost) {
		return fmt.Errorf("%w: salvage value must be between zero and cost", ErrInvalidAsset)
	}
	switch req.Method {
	case "", domain.StraightLine:
		if req.UsefulLifeMonths <= 0 {
			return fmt.Errorf("%w: straight-line assets need a positive useful life", ErrInvalidAsset)
		}
	case domain.DecliningBalance:
		if !req.DecliningRate.IsPositive() || req.DecliningRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: declining rate must be in (0, 1)", ErrInvalidAsset)
		}
	default:
		return fmt.Errorf("%w: unknown depreciation method %q", ErrInvalidAsset, req.Method)
	}
	return nil
}

// parsePeriodEnd resolves a YYYY-MM period to the last day of that month,
// which is the posting date for the period's depreciation voucher.
func parsePeriodEnd(period string) (time.Time, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	return start.AddDate(0, 1, -1), nil
}
