package repositories

import (
	"context"
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AssetReader defines read operations for fixed assets.
type AssetReader interface {
	// FindAssetByID retrieves a fixed asset within a tenant.
	FindAssetByID(ctx context.Context, tenantID string, assetID string) (*domain.FixedAsset, error)

	// ListActiveAssets retrieves all active fixed assets of a tenant.
	ListActiveAssets(ctx context.Context, tenantID string) ([]domain.FixedAsset, error)

	// CountAssets returns the total number of fixed assets ever registered
	// for the tenant, disposed ones included. Used to number asset codes.
	CountAssets(ctx context.Context, tenantID string) (int64, error)
}

// AssetWriter defines write operations for fixed assets.
type AssetWriter interface {
	// SaveAsset persists a new fixed asset.
	SaveAsset(ctx context.Context, asset domain.FixedAsset) error

	// ApplyDepreciation adds amount to the asset's accumulated depreciation
	// and stamps the period. At most one application per asset-period pair:
	// calling again with a period at or before the last applied one is a
	// no-op, so a rerun can safely re-apply a period whose voucher landed
	// but whose asset update was lost.
	ApplyDepreciation(ctx context.Context, tenantID string, assetID string, amount decimal.Decimal, period string, updatedBy string, now time.Time) error
}

// AssetRepositoryFacade combines all fixed-asset repository interfaces.
type AssetRepositoryFacade interface {
	AssetReader
	AssetWriter
}
