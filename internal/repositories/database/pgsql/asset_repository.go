package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	portsrepo "github.com/tenbooks/tenbooks_app/internal/core/ports/repositories"
)

type PgxAssetRepository struct {
	BaseRepository
}

func newPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepositoryFacade {
	return &PgxAssetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AssetRepositoryFacade = (*PgxAssetRepository)(nil)

const assetColumns = `
	asset_id, tenant_id, code, name, category, purchase_date, cost, salvage_value,
	useful_life_months, method, declining_rate, accumulated_depreciation,
	last_depreciation_period, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAsset(row pgx.Row) (*domain.FixedAsset, error) {
	var a domain.FixedAsset
	err := row.Scan(
		&a.AssetID,
		&a.TenantID,
		&a.Code,
		&a.Name,
		&a.Category,
		&a.PurchaseDate,
		&a.Cost,
		&a.SalvageValue,
		&a.UsefulLifeMonths,
		&a.Method,
		&a.DecliningRate,
		&a.AccumulatedDepreciation,
		&a.LastDepreciationPeriod,
		&a.Status,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan fixed asset row", err)
	}
	return &a, nil
}

// FindAssetByID retrieves a fixed asset within a tenant.
func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, tenantID string, assetID string) (*domain.FixedAsset, error) {
	query := `SELECT` + assetColumns + ` FROM fixed_assets WHERE tenant_id = $1 AND asset_id = $2;`
	return scanAsset(r.Pool.QueryRow(ctx, query, tenantID, assetID))
}

// ListActiveAssets retrieves all active fixed assets of a tenant.
func (r *PgxAssetRepository) ListActiveAssets(ctx context.Context, tenantID string) ([]domain.FixedAsset, error) {
	query := `SELECT` + assetColumns + ` FROM fixed_assets WHERE tenant_id = $1 AND status = 'ACTIVE' ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fixed assets for tenant "+tenantID, err)
	}
	defer rows.Close()

	assets := []domain.FixedAsset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fixed asset rows", err)
	}
	return assets, nil
}

// CountAssets returns the total number of fixed assets ever registered for
// the tenant.
func (r *PgxAssetRepository) CountAssets(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM fixed_assets WHERE tenant_id = $1;`, tenantID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count fixed assets for tenant "+tenantID, err)
	}
	return count, nil
}

// SaveAsset persists a new fixed asset.
func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.FixedAsset) error {
	query := `
		INSERT INTO fixed_assets (
			asset_id, tenant_id, code, name, category, purchase_date, cost, salvage_value,
			useful_life_months, method, declining_rate, accumulated_depreciation,
			last_depreciation_period, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`
	_, err := r.Pool.Exec(ctx, query,
		asset.AssetID,
		asset.TenantID,
		asset.Code,
		asset.Name,
		asset.Category,
		asset.PurchaseDate,
		asset.Cost,
		asset.SalvageValue,
		asset.UsefulLifeMonths,
		asset.Method,
		asset.DecliningRate,
		asset.AccumulatedDepreciation,
		asset.LastDepreciationPeriod,
		asset.Status,
		asset.CreatedAt,
		asset.CreatedBy,
		asset.LastUpdatedAt,
		asset.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert fixed asset "+asset.AssetID, err)
	}
	return nil
}

// ApplyDepreciation adds amount to the asset's accumulated depreciation and
// stamps the period. YYYY-MM periods order lexicographically, so the WHERE
// guard makes a repeated application of the same or an earlier period a
// no-op rather than a double charge.
func (r *PgxAssetRepository) ApplyDepreciation(ctx context.Context, tenantID string, assetID string, amount decimal.Decimal, period string, updatedBy string, now time.Time) error {
	query := `
		UPDATE fixed_assets
		SET accumulated_depreciation = accumulated_depreciation + $3,
		    last_depreciation_period = $4,
		    last_updated_by = $5, last_updated_at = $6
		WHERE tenant_id = $1 AND asset_id = $2 AND last_depreciation_period < $4;`
	tag, err := r.Pool.Exec(ctx, query, tenantID, assetID, amount, period, updatedBy, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply depreciation to asset "+assetID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the asset is gone or the period is already applied.
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM fixed_assets WHERE tenant_id = $1 AND asset_id = $2);`, tenantID, assetID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check fixed asset "+assetID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
	}
	return nil
}
