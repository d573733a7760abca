package dto

import (
	"time"

	"github.com/tenbooks/tenbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAssetRequest defines the data needed to register a fixed asset.
type CreateAssetRequest struct {
	Name             string                    `json:"name" binding:"required"`
	Category         string                    `json:"category"`
	PurchaseDate     time.Time                 `json:"purchaseDate" binding:"required"`
	Cost             decimal.Decimal           `json:"cost" binding:"required"`
	SalvageValue     decimal.Decimal           `json:"salvageValue"`
	UsefulLifeMonths int                       `json:"usefulLifeMonths"`
	Method           domain.DepreciationMethod `json:"method" binding:"omitempty,oneof=STRAIGHT_LINE DECLINING_BALANCE"`
	DecliningRate    decimal.Decimal           `json:"decliningRate"`
}

// AssetResponse defines the data returned for a fixed asset.
type AssetResponse struct {
	AssetID                 string                    `json:"assetID"`
	Code                    string                    `json:"code"`
	Name                    string                    `json:"name"`
	Category                string                    `json:"category"`
	PurchaseDate            time.Time                 `json:"purchaseDate"`
	Cost                    decimal.Decimal           `json:"cost"`
	SalvageValue            decimal.Decimal           `json:"salvageValue"`
	UsefulLifeMonths        int                       `json:"usefulLifeMonths"`
	Method                  domain.DepreciationMethod `json:"method"`
	AccumulatedDepreciation decimal.Decimal           `json:"accumulatedDepreciation"`
	NetBookValue            decimal.Decimal           `json:"netBookValue"`
	Status                  domain.AssetStatus        `json:"status"`
}

// ToAssetResponse converts a domain.FixedAsset to its response DTO.
func ToAssetResponse(a *domain.FixedAsset) AssetResponse {
	return AssetResponse{
		AssetID:                 a.AssetID,
		Code:                    a.Code,
		Name:                    a.Name,
		Category:                a.Category,
		PurchaseDate:            a.PurchaseDate,
		Cost:                    a.Cost,
		SalvageValue:            a.SalvageValue,
		UsefulLifeMonths:        a.UsefulLifeMonths,
		Method:                  a.Method,
		AccumulatedDepreciation: a.AccumulatedDepreciation,
		NetBookValue:            a.NetBookValue(),
		Status:                  a.Status,
	}
}

// DepreciationRunRequest triggers a depreciation run for one period.
type DepreciationRunRequest struct {
	Period string `json:"period" binding:"required"` // YYYY-MM
}

// DepreciationRunResult summarizes one depreciation run.
type DepreciationRunResult struct {
	Period         string          `json:"period"`
	AssetsPosted   int             `json:"assetsPosted"`
	AssetsSkipped  int             `json:"assetsSkipped"` // already posted or fully depreciated
	TotalPosted    decimal.Decimal `json:"totalPosted"`
	VoucherNumbers []string        `json:"voucherNumbers"`
}
